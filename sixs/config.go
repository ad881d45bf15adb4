// Package sixs drives the external 6S radiative transfer solver. Each
// invocation is described by an immutable Config value; no solver state
// is shared between successive invocations, so band pipelines may run
// concurrently against the same solver endpoint.
package sixs

import (
	"github.com/jonas-eberle/gee-atmcorr-S2/model"
)

// Atmosphere and aerosol profile selections understood by the solver
const (
	AtmosphereUserWaterAndOzone = "user_water_and_ozone"
	AerosolContinental          = "continental"
)

// SensorAltitudeSatellite places the sensor at satellite level
const SensorAltitudeSatellite = "satellite_level"

// Geometry is the solar and viewing geometry of one solver invocation.
// Month and day drive the solver's own Earth–Sun distance computation
// and must equal the UTC calendar month/day of the scene acquisition.
type Geometry struct {
	SolarZenithDeg float64 `json:"solar_zenith_deg"`
	ViewZenithDeg  float64 `json:"view_zenith_deg"`
	Month          int     `json:"month"`
	Day            int     `json:"day"`
}

// Config fully determines one solver invocation
type Config struct {
	AtmosphereProfile string   `json:"atmosphere_profile"`
	WaterVapor        float64  `json:"water_vapor"`
	Ozone             float64  `json:"ozone"`
	AerosolProfile    string   `json:"aerosol_profile"`
	AOT550            float64  `json:"aot_550"`
	Geometry          Geometry `json:"geometry"`
	SensorAltitude    string   `json:"sensor_altitude"`
	TargetAltitudeKm  float64  `json:"target_altitude_km"`
	HasTargetAltitude bool     `json:"has_target_altitude"`
	ResponseCurve     string   `json:"response_curve"`
}

// Outputs are the calibration quantities the solver produces for one
// (band, scene) pair. They are consumed immediately by the inversion;
// nothing here is a reflectance.
type Outputs struct {
	DirectSolarIrradiance    float64 `json:"direct_solar_irradiance"`
	DiffuseSolarIrradiance   float64 `json:"diffuse_solar_irradiance"`
	PathRadiance             float64 `json:"path_radiance"`
	TransmissivityAbsorption float64 `json:"transmissivity_absorption"`
	TransmissivityScattering float64 `json:"transmissivity_scattering"`
}

// BuildConfig assembles the solver configuration for one band of a
// scene. The sensor view zenith is fixed at nadir: this system assumes
// near-nadir acquisition, and off-nadir viewing geometry is unsupported.
func BuildConfig(scene *model.SceneContext, band model.BandDescriptor) (*Config, error) {
	month, day := scene.MonthDay()

	config := &Config{
		AtmosphereProfile: AtmosphereUserWaterAndOzone,
		WaterVapor:        scene.WaterVapor,
		Ozone:             scene.Ozone,
		AerosolProfile:    AerosolContinental,
		AOT550:            scene.AOT550,
		Geometry: Geometry{
			SolarZenithDeg: scene.SolarZenithDeg,
			ViewZenithDeg:  0,
			Month:          month,
			Day:            day,
		},
		SensorAltitude:    SensorAltitudeSatellite,
		TargetAltitudeKm:  scene.TargetAltitudeKm,
		HasTargetAltitude: true,
		ResponseCurve:     band.ResponseCurve,
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration before any solver call is made.
// The solver result is undefined unless the geometry is complete and
// both altitude fields are set, so an incomplete configuration is a
// programmer error and fails fast here.
func (c *Config) Validate() error {
	if c.Geometry.Month < 1 || c.Geometry.Month > 12 {
		return model.ConfigurationError{Field: "geometry.month", Reason: "must be in [1,12]"}
	}
	if c.Geometry.Day < 1 || c.Geometry.Day > 31 {
		return model.ConfigurationError{Field: "geometry.day", Reason: "must be in [1,31]"}
	}
	if c.Geometry.SolarZenithDeg < 0 || c.Geometry.SolarZenithDeg >= 90 {
		return model.ConfigurationError{Field: "geometry.solar_zenith_deg", Reason: "must be in [0,90)"}
	}
	if c.Geometry.ViewZenithDeg != 0 {
		return model.ConfigurationError{Field: "geometry.view_zenith_deg", Reason: "off-nadir viewing geometry is unsupported"}
	}
	if c.SensorAltitude == "" {
		return model.ConfigurationError{Field: "sensor_altitude", Reason: "must be set before invoking the solver"}
	}
	if !c.HasTargetAltitude {
		return model.ConfigurationError{Field: "target_altitude_km", Reason: "must be set before invoking the solver"}
	}
	if c.TargetAltitudeKm < 0 {
		return model.ConfigurationError{Field: "target_altitude_km", Reason: "must be non-negative"}
	}
	if c.WaterVapor < 0 || c.Ozone < 0 || c.AOT550 < 0 {
		return model.ConfigurationError{Field: "constituents", Reason: "must be non-negative"}
	}
	if c.ResponseCurve == "" {
		return model.ConfigurationError{Field: "response_curve", Reason: "must reference a spectral response curve"}
	}
	return nil
}
