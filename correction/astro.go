package correction

import "math"

// earthSunEccentricityFactor is the amplitude of the annual Earth–Sun
// distance variation in AU
const earthSunEccentricityFactor = 0.01672

// degreesPerDay approximates the Earth's mean orbital motion (360/365.25)
const degreesPerDay = 0.9856

// SolarAngleCorrection returns cos of the solar zenith angle given in
// degrees. The caller is responsible for keeping the angle in [0,90].
func SolarAngleCorrection(solarZenithDeg float64) float64 {
	return math.Cos(solarZenithDeg * math.Pi / 180)
}

// EarthSunDistanceAU returns the Earth–Sun distance in astronomical
// units on the given 1-based day of year. dayOfYear must already be
// normalized to [1,366]; perihelion falls near day 4.
//
// Note the solver independently derives its own distance from the
// configured month and day. The two paths agree to well under 0.1% and
// are deliberately not reconciled.
func EarthSunDistanceAU(dayOfYear int) float64 {
	orbitalAngleDeg := degreesPerDay * (float64(dayOfYear) - 4)
	return 1 - earthSunEccentricityFactor*math.Cos(orbitalAngleDeg*math.Pi/180)
}
