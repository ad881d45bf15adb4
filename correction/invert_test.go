package correction

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonas-eberle/gee-atmcorr-S2/model"
	"github.com/jonas-eberle/gee-atmcorr-S2/sixs"
)

var testOutputs = sixs.Outputs{
	DirectSolarIrradiance:    800,
	DiffuseSolarIrradiance:   100,
	PathRadiance:             5,
	TransmissivityAbsorption: 0.9,
	TransmissivityScattering: 0.95,
}

func TestInvert_ReferenceScenario(t *testing.T) {
	// Mock: the fixed scenario — 2017-01-01, 30° zenith, B2, ESUN 1959,
	// Edir 800, Edif 100, Lp 5, τ 0.855, TOA reflectance 0.2
	scene := testScene(30)
	toa := uniformRaster(0.2)

	// Tested code
	surface, err := Invert(toa, testBand, scene, &testOutputs)

	// Asserts
	assert.Nil(t, err)
	multiplier, _ := RadianceMultiplier(testBand, scene)
	radiance := 0.2 * multiplier
	expected := math.Pi * (radiance - 5) / (0.855 * 900)
	for _, v := range surface.Values {
		assert.InDelta(t, expected, v, 1e-12)
	}
	assert.InDelta(t, 0.4356, surface.Values[0], 1e-3)
}

func TestInvert_Deterministic(t *testing.T) {
	scene := testScene(30)

	first, err1 := Invert(uniformRaster(0.2), testBand, scene, &testOutputs)
	second, err2 := Invert(uniformRaster(0.2), testBand, scene, &testOutputs)

	assert.Nil(t, err1)
	assert.Nil(t, err2)
	assert.Equal(t, first.Values, second.Values)
}

func TestInvert_RoundTripRecoversSurfaceReflectance(t *testing.T) {
	// Mock: derive the TOA reflectance that a surface of known
	// reflectance would produce under these RT outputs, then invert it
	scene := testScene(42.5)
	trueReflectance := 0.31

	multiplier, err := RadianceMultiplier(testBand, scene)
	assert.Nil(t, err)

	transmissivity := testOutputs.TransmissivityAbsorption * testOutputs.TransmissivityScattering
	totalIrradiance := testOutputs.DirectSolarIrradiance + testOutputs.DiffuseSolarIrradiance
	radiance := testOutputs.PathRadiance + trueReflectance*transmissivity*totalIrradiance/math.Pi
	toa := uniformRaster(radiance / multiplier)

	// Tested code
	surface, err := Invert(toa, testBand, scene, &testOutputs)

	// Asserts
	assert.Nil(t, err)
	for _, v := range surface.Values {
		assert.InDelta(t, trueReflectance, v, 1e-9)
	}
}

func TestInvert_ZeroTransmissivityFails(t *testing.T) {
	scene := testScene(30)
	outputs := testOutputs
	outputs.TransmissivityAbsorption = 0

	surface, err := Invert(uniformRaster(0.2), testBand, scene, &outputs)

	assert.Nil(t, surface)
	assert.IsType(t, model.DegenerateTransmissivityError{}, err)
	degenerate := err.(model.DegenerateTransmissivityError)
	assert.Equal(t, "B2", degenerate.Band)
	assert.Equal(t, 0.0, degenerate.Transmissivity)
}

func TestInvert_ZeroIrradianceFails(t *testing.T) {
	scene := testScene(30)
	outputs := testOutputs
	outputs.DirectSolarIrradiance = 0
	outputs.DiffuseSolarIrradiance = 0

	surface, err := Invert(uniformRaster(0.2), testBand, scene, &outputs)

	assert.Nil(t, surface)
	assert.IsType(t, model.DegenerateTransmissivityError{}, err)
	assert.Equal(t, 0.0, err.(model.DegenerateTransmissivityError).TotalIrradiance)
}

func TestInvert_GrazingSunPropagates(t *testing.T) {
	surface, err := Invert(uniformRaster(0.2), testBand, testScene(90), &testOutputs)

	assert.Nil(t, surface)
	assert.IsType(t, model.InvalidSolarGeometryError{}, err)
}
