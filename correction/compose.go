package correction

import (
	"fmt"

	"github.com/jonas-eberle/gee-atmcorr-S2/model"
)

// Compose stacks independently corrected single-band rasters into one
// multi-band image. All rasters must share footprint and resolution.
// Band order is preserved exactly as given; no band is renamed or
// reprojected.
func Compose(bands []model.BandRaster) (*model.CorrectedImage, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("Cannot compose an image from zero bands")
	}

	reference := bands[0]
	for _, band := range bands[1:] {
		if !reference.Raster.SameFootprint(band.Raster) {
			return nil, model.FootprintMismatchError{BandA: reference.Band, BandB: band.Band}
		}
	}

	stacked := make([]model.BandRaster, len(bands))
	copy(stacked, bands)
	return &model.CorrectedImage{Bands: stacked}, nil
}
