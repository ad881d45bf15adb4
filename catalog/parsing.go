package catalog

import (
	"fmt"

	"github.com/jonas-eberle/gee-atmcorr-S2/model"
	"github.com/jonas-eberle/gee-atmcorr-S2/util"
	"github.com/venicegeo/geojson-go/geojson"
)

func parseSearchResults(context *Context, body []byte) ([]model.SceneMetadata, error) {
	featureCollection, err := catalogRawBytesToFeatureCollection(context, body)
	if err != nil {
		return nil, err
	}

	scenes := make([]model.SceneMetadata, len(featureCollection.Features))
	for i, feature := range featureCollection.Features {
		scene, err := sceneMetadataFromFeature(feature)
		if err != nil {
			return nil, err
		}
		scenes[i] = *scene
	}

	return scenes, nil
}

func catalogRawBytesToFeatureCollection(context *Context, body []byte) (*geojson.FeatureCollection, error) {
	geoJSONParsedData, err := geojson.Parse(body)
	if err != nil {
		return nil, util.LogSimpleErr(context, fmt.Sprintf("Failed to parse GeoJSON.\n%v", string(body)), err)
	}

	featureCollection, ok := geoJSONParsedData.(*geojson.FeatureCollection)
	if !ok {
		plErr := util.Error{SimpleMsg: fmt.Sprintf("Expected a FeatureCollection and got %T", geoJSONParsedData), Response: string(body)}
		return nil, plErr.Log(context, "")
	}

	return featureCollection, nil
}

// sceneMetadataFromFeature extracts the correction-relevant metadata
// from a catalog feature. Solar zenith and per-band ESUN are required;
// a scene without them cannot be corrected and is rejected here rather
// than failing later inside a band pipeline.
func sceneMetadataFromFeature(feature *geojson.Feature) (*model.SceneMetadata, error) {
	id := feature.IDStr()

	acquiredDate, err := model.ParseCatalogTime(feature.PropertyString("acquired"))
	if err != nil {
		return nil, model.IncompleteMetadataError{SceneID: id, MissingField: "acquired"}
	}

	if _, ok := feature.Properties["solarZenithAngle"]; !ok {
		return nil, model.IncompleteMetadataError{SceneID: id, MissingField: "solarZenithAngle"}
	}
	solarZenith := feature.PropertyFloat("solarZenithAngle")

	esun, err := esunFromProperty(id, feature.Properties["esun"])
	if err != nil {
		return nil, err
	}

	return &model.SceneMetadata{
		ID:             id,
		AcquiredDate:   acquiredDate,
		SolarZenithDeg: solarZenith,
		ESUN:           esun,
		SensorName:     feature.PropertyString("sensorName"),
		Geometry:       feature.Geometry,
	}, nil
}

func esunFromProperty(sceneID string, property interface{}) (map[string]float64, error) {
	raw, ok := property.(map[string]interface{})
	if !ok || len(raw) == 0 {
		return nil, model.IncompleteMetadataError{SceneID: sceneID, MissingField: "esun"}
	}

	esun := make(map[string]float64, len(raw))
	for band, value := range raw {
		esunValue, ok := value.(float64)
		if !ok || esunValue <= 0 {
			return nil, model.IncompleteMetadataError{SceneID: sceneID, MissingField: "esun." + band}
		}
		esun[band] = esunValue
	}
	return esun, nil
}
