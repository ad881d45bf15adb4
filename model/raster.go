package model

import (
	"fmt"

	"github.com/venicegeo/geojson-go/geojson"
)

// Raster is a single-band pixel array over a fixed geographic footprint
// and resolution. Values are stored row-major. The arithmetic methods
// return new rasters; a raster handed to the next pipeline step is never
// written to again by the step that produced it.
type Raster struct {
	Bounds geojson.BoundingBox
	Width  int
	Height int
	Values []float64
}

// NewRaster creates a zero-filled raster with the given footprint and size
func NewRaster(bounds geojson.BoundingBox, width, height int) *Raster {
	return &Raster{
		Bounds: bounds,
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
}

// NewRasterWithValues creates a raster over existing pixel values
func NewRasterWithValues(bounds geojson.BoundingBox, width, height int, values []float64) (*Raster, error) {
	if len(values) != width*height {
		return nil, fmt.Errorf("Raster value count %d does not match %dx%d", len(values), width, height)
	}
	return &Raster{Bounds: bounds, Width: width, Height: height, Values: values}, nil
}

// Value returns the pixel at column x, row y
func (r *Raster) Value(x, y int) float64 {
	return r.Values[y*r.Width+x]
}

// Set writes the pixel at column x, row y
func (r *Raster) Set(x, y int, v float64) {
	r.Values[y*r.Width+x] = v
}

func (r *Raster) emptyCopy() *Raster {
	bounds := make(geojson.BoundingBox, len(r.Bounds))
	copy(bounds, r.Bounds)
	return NewRaster(bounds, r.Width, r.Height)
}

// MultiplyScalar returns a new raster with every pixel multiplied by k
func (r *Raster) MultiplyScalar(k float64) *Raster {
	out := r.emptyCopy()
	for i, v := range r.Values {
		out.Values[i] = v * k
	}
	return out
}

// SubtractScalar returns a new raster with k subtracted from every pixel
func (r *Raster) SubtractScalar(k float64) *Raster {
	out := r.emptyCopy()
	for i, v := range r.Values {
		out.Values[i] = v - k
	}
	return out
}

// DivideScalar returns a new raster with every pixel divided by k.
// Degenerate divisors must be rejected before this point.
func (r *Raster) DivideScalar(k float64) *Raster {
	out := r.emptyCopy()
	for i, v := range r.Values {
		out.Values[i] = v / k
	}
	return out
}

// SameFootprint reports whether two rasters share footprint and resolution
func (r *Raster) SameFootprint(other *Raster) bool {
	if r.Width != other.Width || r.Height != other.Height {
		return false
	}
	if len(r.Bounds) != len(other.Bounds) {
		return false
	}
	for i := range r.Bounds {
		if r.Bounds[i] != other.Bounds[i] {
			return false
		}
	}
	return true
}
