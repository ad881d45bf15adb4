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

// Package correction is the atmospheric correction core: it resolves
// scene context from the external providers, converts TOA reflectance
// to at-sensor radiance, inverts the radiative transfer outputs into
// surface reflectance per band, and composites the corrected bands.
package correction

import (
	"context"
	"fmt"
	"time"

	"github.com/jonas-eberle/gee-atmcorr-S2/model"
	"github.com/jonas-eberle/gee-atmcorr-S2/spectral"
	"github.com/jonas-eberle/gee-atmcorr-S2/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// SceneCatalog finds scenes covering a point
type SceneCatalog interface {
	FindEarliestSceneOnOrAfter(ctx context.Context, point *geojson.Point, date time.Time, lookahead time.Duration) (*model.SceneMetadata, error)
}

// TerrainSource provides mean elevation in meters
type TerrainSource interface {
	MeanElevation(ctx context.Context, point *geojson.Point) (float64, error)
}

// AtmosphereSource provides the three atmospheric constituents
type AtmosphereSource interface {
	WaterVapor(ctx context.Context, point *geojson.Point, date time.Time) (float64, error)
	Ozone(ctx context.Context, point *geojson.Point, date time.Time) (float64, error)
	AerosolOpticalThickness(ctx context.Context, point *geojson.Point, date time.Time) (float64, error)
}

// Resolver builds the immutable SceneContext for a correction run from
// the external providers
type Resolver struct {
	Catalog    SceneCatalog
	Terrain    TerrainSource
	Atmosphere AtmosphereSource
	Spectral   *spectral.Table
	LogContext util.LogContext
}

// Resolve retrieves scene metadata, atmospheric constituents, and target
// elevation for the point and date, and derives band descriptors for the
// requested bands. Resolution issues provider queries but mutates no
// provider state; the returned SceneContext is read-only from here on.
func (r *Resolver) Resolve(ctx context.Context, point *geojson.Point, date time.Time, lookahead time.Duration, bands []string) (*model.SceneContext, []model.BandDescriptor, error) {
	scene, err := r.Catalog.FindEarliestSceneOnOrAfter(ctx, point, date, lookahead)
	if err != nil {
		return nil, nil, err
	}
	util.LogInfo(r.LogContext, fmt.Sprintf("Resolved scene %s acquired %s", scene.ID, scene.AcquiredDate.Format(time.RFC3339)))

	descriptors, err := r.bandDescriptors(scene, bands)
	if err != nil {
		return nil, nil, err
	}

	if err = ctx.Err(); err != nil {
		return nil, nil, err
	}
	elevationMeters, err := r.Terrain.MeanElevation(ctx, point)
	if err != nil {
		return nil, nil, err
	}

	if err = ctx.Err(); err != nil {
		return nil, nil, err
	}
	waterVapor, err := r.Atmosphere.WaterVapor(ctx, point, scene.AcquiredDate)
	if err != nil {
		return nil, nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, nil, err
	}
	ozone, err := r.Atmosphere.Ozone(ctx, point, scene.AcquiredDate)
	if err != nil {
		return nil, nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, nil, err
	}
	aot550, err := r.Atmosphere.AerosolOpticalThickness(ctx, point, scene.AcquiredDate)
	if err != nil {
		return nil, nil, err
	}

	sceneContext := &model.SceneContext{
		AcquiredDate:     scene.AcquiredDate,
		SolarZenithDeg:   scene.SolarZenithDeg,
		TargetAltitudeKm: elevationMeters / 1000.0, // terrain reports meters, the solver wants km
		WaterVapor:       waterVapor,
		Ozone:            ozone,
		AOT550:           aot550,
	}

	return sceneContext, descriptors, nil
}

// bandDescriptors assembles the static reference data for the requested
// bands from the scene metadata and the spectral response table
func (r *Resolver) bandDescriptors(scene *model.SceneMetadata, bands []string) ([]model.BandDescriptor, error) {
	descriptors := make([]model.BandDescriptor, len(bands))
	for i, band := range bands {
		esun, ok := scene.ESUN[band]
		if !ok {
			return nil, model.IncompleteMetadataError{SceneID: scene.ID, MissingField: "esun." + band}
		}
		curve, err := r.Spectral.ResponseCurve(scene.SensorName, band)
		if err != nil {
			return nil, err
		}
		descriptors[i] = model.BandDescriptor{ID: band, ESUN: esun, ResponseCurve: curve}
	}
	return descriptors, nil
}
