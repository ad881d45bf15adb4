package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/venicegeo/geojson-go/geojson"
)

// The error types below form the correction error taxonomy. Data
// availability and solver errors carry the provider or band they came
// from so a caller can retry or skip; none of them is retried here.

// NoSceneFoundError indicates the catalog holds no scene at the point
// within the search window after the requested date
type NoSceneFoundError struct {
	Point     *geojson.Point
	After     time.Time
	Lookahead time.Duration
}

func (e NoSceneFoundError) Error() string {
	return fmt.Sprintf("No scene found at %v within %v after %v", pointString(e.Point), e.Lookahead, e.After.Format(time.RFC3339))
}

// IncompleteMetadataError indicates a catalog scene is missing a field
// the correction cannot run without
type IncompleteMetadataError struct {
	SceneID      string
	MissingField string
}

func (e IncompleteMetadataError) Error() string {
	return fmt.Sprintf("Scene %s metadata is missing required field %q", e.SceneID, e.MissingField)
}

// MissingElevationError indicates the terrain provider has no value at
// the target point
type MissingElevationError struct {
	Point *geojson.Point
}

func (e MissingElevationError) Error() string {
	return fmt.Sprintf("No elevation available at %v", pointString(e.Point))
}

// NoDataAtLocationError indicates an atmospheric constituent query
// returned no data
type NoDataAtLocationError struct {
	Constituent string
	Point       *geojson.Point
}

func (e NoDataAtLocationError) Error() string {
	return fmt.Sprintf("No %s data available at %v", e.Constituent, pointString(e.Point))
}

// ConfigurationError is a programmer error in an assembled solver
// configuration; it is raised before any external call is made
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("Invalid radiative transfer configuration: %s %s", e.Field, e.Reason)
}

// SolverExecutionError surfaces a failure inside the external
// radiative transfer solver
type SolverExecutionError struct {
	Band   string
	Detail string
	Err    error
}

func (e SolverExecutionError) Error() string {
	msg := fmt.Sprintf("Solver execution failed for band %s: %s", e.Band, e.Detail)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e SolverExecutionError) Unwrap() error {
	return e.Err
}

// InvalidSolarGeometryError indicates a grazing or below-horizon sun;
// the band is uncorrectable for this scene
type InvalidSolarGeometryError struct {
	SolarZenithDeg float64
}

func (e InvalidSolarGeometryError) Error() string {
	return fmt.Sprintf("Solar zenith angle %.3f° leaves no illumination; the scene cannot be corrected", e.SolarZenithDeg)
}

// DegenerateTransmissivityError indicates the inversion denominator
// τ·(Edir+Edif) is numerically zero; the band output is undefined and is
// never coerced to zero or infinity
type DegenerateTransmissivityError struct {
	Band            string
	Transmissivity  float64
	TotalIrradiance float64
}

func (e DegenerateTransmissivityError) Error() string {
	return fmt.Sprintf("Degenerate transmissivity for band %s: τ=%g, Edir+Edif=%g", e.Band, e.Transmissivity, e.TotalIrradiance)
}

// FootprintMismatchError indicates two rasters offered for compositing
// do not share footprint and resolution
type FootprintMismatchError struct {
	BandA string
	BandB string
}

func (e FootprintMismatchError) Error() string {
	return fmt.Sprintf("Rasters for bands %s and %s do not share a footprint", e.BandA, e.BandB)
}

// BandError wraps a per-band pipeline failure with the band it occurred in
type BandError struct {
	Band string
	Err  error
}

func (e BandError) Error() string {
	return fmt.Sprintf("Band %s: %v", e.Band, e.Err)
}

func (e BandError) Unwrap() error {
	return e.Err
}

// IsDataUnavailable reports whether the error is a missing scene,
// elevation, or constituent
func IsDataUnavailable(err error) bool {
	var noScene NoSceneFoundError
	var noElevation MissingElevationError
	var noData NoDataAtLocationError
	var incomplete IncompleteMetadataError
	return errors.As(err, &noScene) || errors.As(err, &noElevation) ||
		errors.As(err, &noData) || errors.As(err, &incomplete)
}

func pointString(p *geojson.Point) string {
	if p == nil || len(p.Coordinates) < 2 {
		return "(unknown point)"
	}
	return fmt.Sprintf("(%.5f, %.5f)", p.Coordinates[0], p.Coordinates[1])
}
