// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sceneindex

import (
	"compress/gzip"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jonas-eberle/gee-atmcorr-S2/model"
	"github.com/jonas-eberle/gee-atmcorr-S2/util"
)

// Scene list CSV columns:
// product_id, acquired, sensor, solar_zenith, min_lon, min_lat, max_lon, max_lat, esun_json
const sceneListColumns = 9

// ImportSceneList downloads a scene list export and upserts every
// record into the index. Records that fail to parse are skipped and
// counted; a download or database failure aborts the import.
func ImportSceneList(ctx util.LogContext, provider ConnectionProvider, sceneListURL string, isGzip bool) (imported int, skipped int, err error) {
	start := time.Now()
	util.LogAudit(ctx, util.LogAuditInput{Actor: "anon user", Action: "GET", Actee: sceneListURL, Message: "Importing scene list", Severity: util.INFO})

	response, err := util.HTTPClient().Get(sceneListURL)
	if err != nil {
		return 0, 0, err
	}
	defer response.Body.Close()
	if response.StatusCode != 200 {
		return 0, 0, fmt.Errorf("Non-200 response code: %d", response.StatusCode)
	}

	var rawReader io.Reader = response.Body
	if isGzip {
		gzipReader, err := gzip.NewReader(rawReader)
		if err != nil {
			return 0, 0, err
		}
		defer gzipReader.Close()
		rawReader = gzipReader
	}

	database, err := provider(ctx)
	if err != nil {
		return 0, 0, err
	}
	tx, err := database.Begin()
	if err != nil {
		return 0, 0, err
	}

	csvReader := csv.NewReader(rawReader)

doneReading:
	for {
		record, readErr := csvReader.Read()
		switch readErr {
		case nil:
			scene, parseErr := parseSceneListRecord(record)
			if parseErr != nil {
				skipped++
				continue
			}
			if err = InsertScene(tx, *scene); err != nil {
				tx.Rollback()
				return imported, skipped, err
			}
			imported++
		case io.EOF:
			break doneReading
		default:
			tx.Rollback()
			return imported, skipped, readErr
		}
	}

	if err = tx.Commit(); err != nil {
		return imported, skipped, err
	}

	util.LogAudit(ctx, util.LogAuditInput{Actor: "anon user", Action: "GET", Actee: sceneListURL,
		Message: fmt.Sprintf("Imported scene list; %d imported, %d skipped, duration: %fs", imported, skipped, time.Since(start).Seconds()), Severity: util.INFO})
	return imported, skipped, nil
}

func parseSceneListRecord(record []string) (*IndexedScene, error) {
	if len(record) != sceneListColumns {
		return nil, fmt.Errorf("Expected %d columns and got %d", sceneListColumns, len(record))
	}

	acquired, err := model.ParseCatalogTime(record[1])
	if err != nil {
		return nil, err
	}

	solarZenith, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return nil, err
	}

	bounds := make([]float64, 4)
	for i := 0; i < 4; i++ {
		if bounds[i], err = strconv.ParseFloat(record[4+i], 64); err != nil {
			return nil, err
		}
	}

	esun := map[string]float64{}
	if err = json.Unmarshal([]byte(record[8]), &esun); err != nil {
		return nil, err
	}
	if len(esun) == 0 {
		return nil, fmt.Errorf("Scene %s has no per-band solar irradiance data", record[0])
	}

	return &IndexedScene{
		ProductID:       record[0],
		AcquisitionDate: acquired,
		SensorName:      record[2],
		SolarZenithDeg:  solarZenith,
		ESUN:            esun,
		MinLon:          bounds[0],
		MinLat:          bounds[1],
		MaxLon:          bounds[2],
		MaxLat:          bounds[3],
	}, nil
}
