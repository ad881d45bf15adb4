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

package correction

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/geojson-go/geojson"

	"github.com/jonas-eberle/gee-atmcorr-S2/model"
	"github.com/jonas-eberle/gee-atmcorr-S2/sixs"
	"github.com/jonas-eberle/gee-atmcorr-S2/spectral"
	"github.com/jonas-eberle/gee-atmcorr-S2/util"
)

// Mocks

type fakeCatalog struct {
	scene *model.SceneMetadata
	err   error
}

func (f *fakeCatalog) FindEarliestSceneOnOrAfter(ctx context.Context, point *geojson.Point, date time.Time, lookahead time.Duration) (*model.SceneMetadata, error) {
	return f.scene, f.err
}

type fakeTerrain struct {
	elevationMeters float64
	err             error
}

func (f *fakeTerrain) MeanElevation(ctx context.Context, point *geojson.Point) (float64, error) {
	return f.elevationMeters, f.err
}

type fakeAtmosphere struct {
	waterVapor float64
	ozone      float64
	aot550     float64
	err        error
}

func (f *fakeAtmosphere) WaterVapor(ctx context.Context, point *geojson.Point, date time.Time) (float64, error) {
	return f.waterVapor, f.err
}

func (f *fakeAtmosphere) Ozone(ctx context.Context, point *geojson.Point, date time.Time) (float64, error) {
	return f.ozone, f.err
}

func (f *fakeAtmosphere) AerosolOpticalThickness(ctx context.Context, point *geojson.Point, date time.Time) (float64, error) {
	return f.aot550, f.err
}

type fakeSolver struct {
	mutex    sync.Mutex
	inFlight int
	peak     int
	outputs  map[string]*sixs.Outputs
	err      error
}

func (f *fakeSolver) Run(ctx context.Context, config *sixs.Config) (*sixs.Outputs, error) {
	f.mutex.Lock()
	f.inFlight++
	if f.inFlight > f.peak {
		f.peak = f.inFlight
	}
	f.mutex.Unlock()

	time.Sleep(2 * time.Millisecond)

	f.mutex.Lock()
	f.inFlight--
	f.mutex.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if outputs, ok := f.outputs[config.ResponseCurve]; ok {
		return outputs, nil
	}
	return nil, model.SolverExecutionError{Detail: "No fixture for curve " + config.ResponseCurve}
}

func testSpectralTable(t *testing.T) *spectral.Table {
	table, err := spectral.LoadTable(strings.NewReader(`{
		"sensors": {
			"Sentinel-2A": {"B2": "S2A_MSI_02", "B3": "S2A_MSI_03", "B4": "S2A_MSI_04"}
		}
	}`))
	assert.Nil(t, err)
	return table
}

func testSceneMetadata() *model.SceneMetadata {
	return &model.SceneMetadata{
		ID:             "S2A_MSIL1C_20170101T103432",
		AcquiredDate:   time.Date(2017, 1, 1, 10, 30, 0, 0, time.UTC),
		SolarZenithDeg: 30,
		SensorName:     "Sentinel-2A",
		ESUN:           map[string]float64{"B2": 1959.0, "B3": 1823.0, "B4": 1512.0},
	}
}

func testPipeline(t *testing.T, solver sixs.Solver, concurrency int) *Pipeline {
	resolver := &Resolver{
		Catalog:    &fakeCatalog{scene: testSceneMetadata()},
		Terrain:    &fakeTerrain{elevationMeters: 50},
		Atmosphere: &fakeAtmosphere{waterVapor: 2.0, ozone: 0.3, aot550: 0.1},
		Spectral:   testSpectralTable(t),
		LogContext: &util.BasicLogContext{},
	}
	return &Pipeline{
		Resolver:    resolver,
		Solver:      solver,
		Concurrency: concurrency,
		LogContext:  &util.BasicLogContext{},
	}
}

func uniformOutputs() map[string]*sixs.Outputs {
	return map[string]*sixs.Outputs{
		"S2A_MSI_02": {DirectSolarIrradiance: 800, DiffuseSolarIrradiance: 100, PathRadiance: 5, TransmissivityAbsorption: 0.9, TransmissivityScattering: 0.95},
		"S2A_MSI_03": {DirectSolarIrradiance: 750, DiffuseSolarIrradiance: 90, PathRadiance: 4, TransmissivityAbsorption: 0.92, TransmissivityScattering: 0.96},
		"S2A_MSI_04": {DirectSolarIrradiance: 700, DiffuseSolarIrradiance: 80, PathRadiance: 3, TransmissivityAbsorption: 0.94, TransmissivityScattering: 0.97},
	}
}

func testRequest(bands ...string) Request {
	toa := map[string]*model.Raster{}
	for _, band := range bands {
		toa[band] = uniformRaster(0.2)
	}
	return Request{
		Point:     geojson.NewPoint([]float64{13.05, 52.05}),
		Date:      time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC),
		Lookahead: 30 * 24 * time.Hour,
		Bands:     bands,
		TOA:       toa,
	}
}

// Tests

func TestPipelineCorrect_Success(t *testing.T) {
	// Mock
	solver := &fakeSolver{outputs: uniformOutputs()}
	pipeline := testPipeline(t, solver, 2)

	// Tested code
	image, err := pipeline.Correct(context.Background(), testRequest("B4", "B3", "B2"))

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, []string{"B4", "B3", "B2"}, image.BandIDs())
	for _, band := range image.Bands {
		for _, v := range band.Raster.Values {
			assert.Greater(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestPipelineCorrect_MatchesSingleBandInvert(t *testing.T) {
	// Mock: same scenario as the direct Invert reference test
	solver := &fakeSolver{outputs: uniformOutputs()}
	pipeline := testPipeline(t, solver, 1)

	// Tested code
	image, err := pipeline.Correct(context.Background(), testRequest("B2"))

	// Asserts
	assert.Nil(t, err)
	scene := testScene(30)
	expected, invertErr := Invert(uniformRaster(0.2), testBand, scene, solver.outputs["S2A_MSI_02"])
	assert.Nil(t, invertErr)
	assert.Equal(t, expected.Values, image.Bands[0].Raster.Values)
}

func TestPipelineCorrect_BoundedConcurrency(t *testing.T) {
	solver := &fakeSolver{outputs: uniformOutputs()}
	pipeline := testPipeline(t, solver, 1)

	_, err := pipeline.Correct(context.Background(), testRequest("B2", "B3", "B4"))

	assert.Nil(t, err)
	assert.Equal(t, 1, solver.peak)
}

func TestPipelineCorrect_SolverFailureNamesBand(t *testing.T) {
	// Mock: the solver fails every invocation
	solver := &fakeSolver{err: model.SolverExecutionError{Detail: "Solver backend unavailable"}}
	pipeline := testPipeline(t, solver, 2)

	// Tested code
	image, err := pipeline.Correct(context.Background(), testRequest("B2"))

	// Asserts
	assert.Nil(t, image)
	var bandErr model.BandError
	assert.ErrorAs(t, err, &bandErr)
	assert.Equal(t, "B2", bandErr.Band)
	assert.IsType(t, model.SolverExecutionError{}, bandErr.Err)
}

func TestPipelineCorrect_MissingTOARasterFails(t *testing.T) {
	solver := &fakeSolver{outputs: uniformOutputs()}
	pipeline := testPipeline(t, solver, 2)
	request := testRequest("B2", "B3")
	delete(request.TOA, "B3")

	image, err := pipeline.Correct(context.Background(), request)

	assert.Nil(t, image)
	assert.Contains(t, err.Error(), "B3")
}

func TestPipelineCorrect_CatalogFailurePropagates(t *testing.T) {
	pipeline := testPipeline(t, &fakeSolver{outputs: uniformOutputs()}, 2)
	pipeline.Resolver.Catalog = &fakeCatalog{err: model.NoSceneFoundError{}}

	image, err := pipeline.Correct(context.Background(), testRequest("B2"))

	assert.Nil(t, image)
	assert.IsType(t, model.NoSceneFoundError{}, err)
	assert.True(t, model.IsDataUnavailable(err))
}

func TestPipelineCorrect_UnknownBandFails(t *testing.T) {
	pipeline := testPipeline(t, &fakeSolver{outputs: uniformOutputs()}, 2)

	image, err := pipeline.Correct(context.Background(), testRequest("B99"))

	assert.Nil(t, image)
	assert.IsType(t, model.IncompleteMetadataError{}, err)
}

func TestPipelineCorrect_CancelledContextFails(t *testing.T) {
	pipeline := testPipeline(t, &fakeSolver{outputs: uniformOutputs()}, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	image, err := pipeline.Correct(ctx, testRequest("B2"))

	assert.Nil(t, image)
	assert.NotNil(t, err)
}

func TestPipelineCoefficients_Success(t *testing.T) {
	// Mock
	solver := &fakeSolver{outputs: uniformOutputs()}
	pipeline := testPipeline(t, solver, 2)
	point := geojson.NewPoint([]float64{13.05, 52.05})
	date := time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)

	// Tested code
	scene, coefficients, err := pipeline.Coefficients(context.Background(), point, date, 30*24*time.Hour, []string{"B2", "B3"})

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, 30.0, scene.SolarZenithDeg)
	assert.Equal(t, 0.05, scene.TargetAltitudeKm)
	assert.Len(t, coefficients, 2)

	assert.Equal(t, "B2", coefficients[0].Band)
	assert.InDelta(t, 0.855, coefficients[0].Transmissivity, 1e-12)
	assert.Equal(t, 900.0, coefficients[0].TotalIrradiance)
	assert.Equal(t, 5.0, coefficients[0].PathRadiance)
	assert.InDelta(t, 0.9833, coefficients[0].EarthSunDistanceAU, 1e-4)

	assert.Equal(t, "B3", coefficients[1].Band)
	assert.InDelta(t, 0.92*0.96, coefficients[1].Transmissivity, 1e-12)
}

func TestPipelineCoefficients_SolverFailureNamesBand(t *testing.T) {
	solver := &fakeSolver{err: model.SolverExecutionError{Detail: "Solver backend unavailable"}}
	pipeline := testPipeline(t, solver, 2)
	point := geojson.NewPoint([]float64{13.05, 52.05})

	_, coefficients, err := pipeline.Coefficients(context.Background(), point, time.Now(), time.Hour, []string{"B2"})

	assert.Nil(t, coefficients)
	var bandErr model.BandError
	assert.ErrorAs(t, err, &bandErr)
	assert.Equal(t, "B2", bandErr.Band)
}
