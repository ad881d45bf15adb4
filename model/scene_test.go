package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSceneContext_DayOfYearAndMonthDay(t *testing.T) {
	scene := SceneContext{AcquiredDate: time.Date(2017, 3, 15, 10, 30, 0, 0, time.UTC)}

	month, day := scene.MonthDay()

	assert.Equal(t, 74, scene.DayOfYear())
	assert.Equal(t, 3, month)
	assert.Equal(t, 15, day)
}

func TestSceneContext_CalendarFieldsUseUTC(t *testing.T) {
	// Mock: local midnight west of Greenwich is still the prior UTC day
	tz := time.FixedZone("UTC-6", -6*3600)
	scene := SceneContext{AcquiredDate: time.Date(2017, 1, 1, 20, 0, 0, 0, tz)}

	month, day := scene.MonthDay()

	assert.Equal(t, 1, month)
	assert.Equal(t, 2, day)
	assert.Equal(t, 2, scene.DayOfYear())
}

func TestSceneMetadata_GeoJSONFeature(t *testing.T) {
	scene := SceneMetadata{
		ID:             "scene-1",
		AcquiredDate:   time.Date(2017, 1, 1, 10, 30, 0, 0, time.UTC),
		SolarZenithDeg: 30,
		SensorName:     "Sentinel-2A",
		ESUN:           map[string]float64{"B2": 1959.0},
	}

	feature, err := scene.GeoJSONFeature()

	assert.Nil(t, err)
	assert.Equal(t, "scene-1", feature.IDStr())
	assert.Equal(t, "Sentinel-2A", feature.PropertyString("sensorName"))
	assert.Equal(t, 30.0, feature.PropertyFloat("solarZenithAngle"))
}

func TestIsDataUnavailable(t *testing.T) {
	assert.True(t, IsDataUnavailable(NoSceneFoundError{}))
	assert.True(t, IsDataUnavailable(MissingElevationError{}))
	assert.True(t, IsDataUnavailable(NoDataAtLocationError{}))
	assert.True(t, IsDataUnavailable(IncompleteMetadataError{}))
	assert.True(t, IsDataUnavailable(BandError{Band: "B2", Err: NoDataAtLocationError{}}))
	assert.False(t, IsDataUnavailable(SolverExecutionError{}))
	assert.False(t, IsDataUnavailable(ConfigurationError{}))
}
