package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/geojson-go/geojson"

	"github.com/jonas-eberle/gee-atmcorr-S2/model"
)

func validSceneProperties() map[string]interface{} {
	return map[string]interface{}{
		"acquired":         "2017-01-01T10:30:00Z",
		"solarZenithAngle": 30.0,
		"sensorName":       "Sentinel-2A",
		"esun":             map[string]interface{}{"B2": 1959.0, "B3": 1823.0},
	}
}

func TestSceneMetadataFromFeature_Success(t *testing.T) {
	// Mock
	feature := geojson.NewFeature(geojson.NewPoint([]float64{13.05, 52.05}), "S2A_MSIL1C_20170101T103432", validSceneProperties())

	// Tested code
	scene, err := sceneMetadataFromFeature(feature)

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, "S2A_MSIL1C_20170101T103432", scene.ID)
	assert.Equal(t, 2017, scene.AcquiredDate.Year())
	assert.Equal(t, 30.0, scene.SolarZenithDeg)
	assert.Equal(t, "Sentinel-2A", scene.SensorName)
	assert.Equal(t, 1959.0, scene.ESUN["B2"])
	assert.Equal(t, 1823.0, scene.ESUN["B3"])
}

func TestSceneMetadataFromFeature_MissingAcquired(t *testing.T) {
	properties := validSceneProperties()
	delete(properties, "acquired")
	feature := geojson.NewFeature(nil, "scene-1", properties)

	_, err := sceneMetadataFromFeature(feature)

	assert.IsType(t, model.IncompleteMetadataError{}, err)
	assert.Equal(t, "acquired", err.(model.IncompleteMetadataError).MissingField)
}

func TestSceneMetadataFromFeature_UnparseableAcquired(t *testing.T) {
	properties := validSceneProperties()
	properties["acquired"] = "last Tuesday"
	feature := geojson.NewFeature(nil, "scene-1", properties)

	_, err := sceneMetadataFromFeature(feature)

	assert.IsType(t, model.IncompleteMetadataError{}, err)
}

func TestSceneMetadataFromFeature_MissingSolarZenith(t *testing.T) {
	properties := validSceneProperties()
	delete(properties, "solarZenithAngle")
	feature := geojson.NewFeature(nil, "scene-1", properties)

	_, err := sceneMetadataFromFeature(feature)

	assert.IsType(t, model.IncompleteMetadataError{}, err)
	assert.Equal(t, "solarZenithAngle", err.(model.IncompleteMetadataError).MissingField)
}

func TestSceneMetadataFromFeature_MissingESUN(t *testing.T) {
	properties := validSceneProperties()
	delete(properties, "esun")
	feature := geojson.NewFeature(nil, "scene-1", properties)

	_, err := sceneMetadataFromFeature(feature)

	assert.IsType(t, model.IncompleteMetadataError{}, err)
	assert.Equal(t, "esun", err.(model.IncompleteMetadataError).MissingField)
}

func TestSceneMetadataFromFeature_NonPositiveESUN(t *testing.T) {
	properties := validSceneProperties()
	properties["esun"] = map[string]interface{}{"B2": 0.0}
	feature := geojson.NewFeature(nil, "scene-1", properties)

	_, err := sceneMetadataFromFeature(feature)

	assert.IsType(t, model.IncompleteMetadataError{}, err)
	assert.Equal(t, "esun.B2", err.(model.IncompleteMetadataError).MissingField)
}

func TestParseSearchResults_FeatureCollection(t *testing.T) {
	// Mock
	body := []byte(`{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"id": "scene-1",
			"geometry": {"type": "Point", "coordinates": [13.05, 52.05]},
			"properties": {
				"acquired": "2017-01-05T10:30:00Z",
				"solarZenithAngle": 42.0,
				"sensorName": "Sentinel-2A",
				"esun": {"B2": 1959.0}
			}
		}]
	}`)

	// Tested code
	scenes, err := parseSearchResults(&Context{}, body)

	// Asserts
	assert.Nil(t, err)
	assert.Len(t, scenes, 1)
	assert.Equal(t, "scene-1", scenes[0].ID)
	assert.Equal(t, 42.0, scenes[0].SolarZenithDeg)
}

func TestParseSearchResults_NotAFeatureCollection(t *testing.T) {
	body := []byte(`{"type": "Point", "coordinates": [13.05, 52.05]}`)

	_, err := parseSearchResults(&Context{}, body)

	assert.NotNil(t, err)
}

func TestParseSearchResults_InvalidJSON(t *testing.T) {
	_, err := parseSearchResults(&Context{}, []byte("this is not geojson"))

	assert.NotNil(t, err)
}
