package model

import (
	"time"

	"github.com/venicegeo/geojson-go/geojson"
)

// SceneContext holds the atmospheric and geometric parameters of a
// single correction run. It is created once by the resolver and must
// not be mutated afterward; all band pipelines read it concurrently.
type SceneContext struct {
	AcquiredDate     time.Time
	SolarZenithDeg   float64
	TargetAltitudeKm float64
	WaterVapor       float64
	Ozone            float64
	AOT550           float64
}

// DayOfYear returns the 1-based UTC day of year of the acquisition
func (sc *SceneContext) DayOfYear() int {
	return sc.AcquiredDate.UTC().YearDay()
}

// MonthDay returns the UTC calendar month and day of the acquisition
func (sc *SceneContext) MonthDay() (month int, day int) {
	utc := sc.AcquiredDate.UTC()
	return int(utc.Month()), utc.Day()
}

// BandDescriptor is the static reference data for one spectral band
type BandDescriptor struct {
	ID            string
	ESUN          float64 // solar irradiance constant, W·m⁻²·µm⁻¹
	ResponseCurve string  // opaque handle into the spectral response table
}

// SceneMetadata is a single scene as returned by a scene catalog
type SceneMetadata struct {
	ID             string
	AcquiredDate   time.Time
	SolarZenithDeg float64
	ESUN           map[string]float64
	SensorName     string
	Geometry       interface{}
}

// GeoJSONFeature converts the metadata to a GeoJSON feature
func (sm SceneMetadata) GeoJSONFeature() (*geojson.Feature, error) {
	f := geojson.NewFeature(sm.Geometry, sm.ID, map[string]interface{}{
		"acquiredDate":     sm.AcquiredDate.Format(StandardTimeLayout),
		"solarZenithAngle": sm.SolarZenithDeg,
		"sensorName":       sm.SensorName,
		"esun":             sm.ESUN,
	})
	f.Bbox = f.ForceBbox()
	return f, nil
}

// BandRaster pairs a corrected raster with the band it belongs to
type BandRaster struct {
	Band   string
	Raster *Raster
}

// CorrectedImage is an ordered stack of per-band surface reflectance
// rasters; band order is the order of correction invocation
type CorrectedImage struct {
	Bands []BandRaster
}

// BandIDs returns the band identifiers in stacking order
func (ci *CorrectedImage) BandIDs() []string {
	ids := make([]string, len(ci.Bands))
	for i, band := range ci.Bands {
		ids[i] = band.Band
	}
	return ids
}
