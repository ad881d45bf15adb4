// Package sceneindex answers scene catalog queries from a local
// Postgres index instead of the remote catalog, and ingests scene list
// exports into that index.
package sceneindex

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jonas-eberle/gee-atmcorr-S2/model"
	"github.com/venicegeo/geojson-go/geojson"
)

// Store is a scene catalog backed by the local index. It satisfies the
// same earliest-scene contract as the remote catalog client.
type Store struct {
	DB *sql.DB
}

// FindEarliestSceneOnOrAfter returns the earliest indexed scene whose
// footprint contains the point, acquired within the lookahead window
func (s *Store) FindEarliestSceneOnOrAfter(ctx context.Context, point *geojson.Point, date time.Time, lookahead time.Duration) (*model.SceneMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Commit()

	scene, err := searchEarliestScene(tx, point, date, date.Add(lookahead))
	if err == sql.ErrNoRows {
		return nil, model.NoSceneFoundError{Point: point, After: date, Lookahead: lookahead}
	}
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	return sceneMetadataFromIndexedScene(scene), nil
}

func searchEarliestScene(tx *sql.Tx, point *geojson.Point, minAcquired, maxAcquired time.Time) (*IndexedScene, error) {
	lon, lat := point.Coordinates[0], point.Coordinates[1]

	var esunJSON []byte
	scene := IndexedScene{}
	rows, err := tx.Query(`
		SELECT product_id, acquisition_date, sensor_name, solar_zenith, esun, min_lon, min_lat, max_lon, max_lat
		FROM public.scenes
		WHERE acquisition_date >= $1 AND acquisition_date <= $2
			AND min_lon <= $3 AND max_lon >= $3
			AND min_lat <= $4 AND max_lat >= $4
		ORDER BY acquisition_date ASC
		LIMIT 1`,
		minAcquired, maxAcquired, lon, lat,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, sql.ErrNoRows
	}

	err = rows.Scan(&scene.ProductID, &scene.AcquisitionDate, &scene.SensorName, &scene.SolarZenithDeg,
		&esunJSON, &scene.MinLon, &scene.MinLat, &scene.MaxLon, &scene.MaxLat)
	if err != nil {
		return nil, err
	}

	if err = json.Unmarshal(esunJSON, &scene.ESUN); err != nil {
		return nil, err
	}

	return &scene, nil
}

// InsertScene upserts one scene into the index
func InsertScene(tx *sql.Tx, scene IndexedScene) error {
	esunJSON, err := json.Marshal(scene.ESUN)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO public.scenes
		(product_id, acquisition_date, sensor_name, solar_zenith, esun, min_lon, min_lat, max_lon, max_lat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (product_id) DO UPDATE SET
			acquisition_date = EXCLUDED.acquisition_date,
			sensor_name = EXCLUDED.sensor_name,
			solar_zenith = EXCLUDED.solar_zenith,
			esun = EXCLUDED.esun,
			min_lon = EXCLUDED.min_lon,
			min_lat = EXCLUDED.min_lat,
			max_lon = EXCLUDED.max_lon,
			max_lat = EXCLUDED.max_lat`,
		scene.ProductID, scene.AcquisitionDate, scene.SensorName, scene.SolarZenithDeg,
		esunJSON, scene.MinLon, scene.MinLat, scene.MaxLon, scene.MaxLat,
	)
	return err
}

func sceneMetadataFromIndexedScene(scene *IndexedScene) *model.SceneMetadata {
	geometry := geojson.NewPolygon([][][]float64{{
		{scene.MinLon, scene.MinLat},
		{scene.MaxLon, scene.MinLat},
		{scene.MaxLon, scene.MaxLat},
		{scene.MinLon, scene.MaxLat},
		{scene.MinLon, scene.MinLat},
	}})

	return &model.SceneMetadata{
		ID:             scene.ProductID,
		AcquiredDate:   scene.AcquisitionDate,
		SolarZenithDeg: scene.SolarZenithDeg,
		ESUN:           scene.ESUN,
		SensorName:     scene.SensorName,
		Geometry:       geometry,
	}
}
