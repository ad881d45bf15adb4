package correction

import (
	"math"

	"github.com/jonas-eberle/gee-atmcorr-S2/model"
	"github.com/jonas-eberle/gee-atmcorr-S2/sixs"
)

// Invert computes a band's surface reflectance from its TOA reflectance
// and the solver's calibration quantities:
//
//	τ = τ_absorption · τ_scattering
//	ρ = π · (L − Lp) / (τ · (Edir + Edif))
//
// where L is the at-sensor radiance obtained from the TOA reflectance.
// A numerically zero denominator means there is no illumination or
// transmission path; the band output is undefined and the error is
// returned instead of a coerced raster.
func Invert(reflectance *model.Raster, band model.BandDescriptor, scene *model.SceneContext, outputs *sixs.Outputs) (*model.Raster, error) {
	radiance, err := TOAToRadiance(reflectance, band, scene)
	if err != nil {
		return nil, err
	}

	transmissivity := outputs.TransmissivityAbsorption * outputs.TransmissivityScattering
	totalIrradiance := outputs.DirectSolarIrradiance + outputs.DiffuseSolarIrradiance
	denominator := transmissivity * totalIrradiance
	if denominator == 0 {
		return nil, model.DegenerateTransmissivityError{
			Band:            band.ID,
			Transmissivity:  transmissivity,
			TotalIrradiance: totalIrradiance,
		}
	}

	return radiance.SubtractScalar(outputs.PathRadiance).MultiplyScalar(math.Pi / denominator), nil
}
