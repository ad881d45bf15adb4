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

package util

import (
	"os"
	"runtime"
	"strconv"
)

// Environment variables
const (
	SCENE_CATALOG_URL      = "SCENE_CATALOG_URL"
	SCENE_CATALOG_KEY      = "SCENE_CATALOG_KEY"
	TERRAIN_URL            = "TERRAIN_URL"
	ATMOSPHERE_URL         = "ATMOSPHERE_URL"
	SIXS_URL               = "SIXS_URL"
	SPECTRAL_TABLE_PATH    = "SPECTRAL_TABLE_PATH"
	CORRECTION_CONCURRENCY = "CORRECTION_CONCURRENCY"
)

// GetSceneCatalogURL returns a string for the SCENE_CATALOG_URL environment variable
func GetSceneCatalogURL() string {
	catalogURL, ok := os.LookupEnv(SCENE_CATALOG_URL)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get scene catalog URL from the environment. The remote catalog will not be available.")
	}
	return catalogURL
}

// GetSceneCatalogKey returns a string for the SCENE_CATALOG_KEY environment variable
func GetSceneCatalogKey() string {
	return os.Getenv(SCENE_CATALOG_KEY)
}

// GetTerrainURL returns a string for the TERRAIN_URL environment variable
func GetTerrainURL() string {
	terrainURL, ok := os.LookupEnv(TERRAIN_URL)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get terrain provider URL from the environment. Elevation lookups will not be available.")
	}
	return terrainURL
}

// GetAtmosphereURL returns a string for the ATMOSPHERE_URL environment variable
func GetAtmosphereURL() string {
	atmosphereURL, ok := os.LookupEnv(ATMOSPHERE_URL)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get atmospheric constituent provider URL from the environment. Constituent lookups will not be available.")
	}
	return atmosphereURL
}

// GetSixSURL returns a string for the SIXS_URL environment variable
func GetSixSURL() string {
	sixsURL, ok := os.LookupEnv(SIXS_URL)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get 6S solver URL from the environment. Atmospheric correction will not be available.")
	}
	return sixsURL
}

// GetSpectralTablePath returns a string for the SPECTRAL_TABLE_PATH environment variable
func GetSpectralTablePath() string {
	tablePath, ok := os.LookupEnv(SPECTRAL_TABLE_PATH)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get spectral response table path from the environment.")
	}
	return tablePath
}

// GetCorrectionConcurrency returns the band pipeline concurrency bound,
// defaulting to the core count when unset or invalid
func GetCorrectionConcurrency() int {
	if value, ok := os.LookupEnv(CORRECTION_CONCURRENCY); ok {
		if concurrency, err := strconv.Atoi(value); err == nil && concurrency > 0 {
			return concurrency
		}
		LogAlert(&BasicLogContext{}, "Invalid CORRECTION_CONCURRENCY value; falling back to core count.")
	}
	return runtime.NumCPU()
}
