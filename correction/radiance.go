package correction

import (
	"math"

	"github.com/jonas-eberle/gee-atmcorr-S2/model"
)

// RadianceMultiplier returns the scalar that converts the band's TOA
// reflectance to at-sensor radiance:
//
//	multiplier = ESUN · cos(solarZenith) / (π · d²)
//
// where d is the Earth–Sun distance on the acquisition day.
func RadianceMultiplier(band model.BandDescriptor, scene *model.SceneContext) (float64, error) {
	if scene.SolarZenithDeg >= 90 {
		return 0, model.InvalidSolarGeometryError{SolarZenithDeg: scene.SolarZenithDeg}
	}

	distance := EarthSunDistanceAU(scene.DayOfYear())
	return band.ESUN * SolarAngleCorrection(scene.SolarZenithDeg) / (math.Pi * distance * distance), nil
}

// TOAToRadiance converts a band's TOA reflectance raster into at-sensor
// radiance. The conversion is linear per pixel, so scaling the input
// reflectance scales the output radiance by the same factor.
func TOAToRadiance(reflectance *model.Raster, band model.BandDescriptor, scene *model.SceneContext) (*model.Raster, error) {
	multiplier, err := RadianceMultiplier(band, scene)
	if err != nil {
		return nil, err
	}
	return reflectance.MultiplyScalar(multiplier), nil
}
