// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package correction

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonas-eberle/gee-atmcorr-S2/metrics"
	"github.com/jonas-eberle/gee-atmcorr-S2/model"
	"github.com/jonas-eberle/gee-atmcorr-S2/sixs"
	"github.com/jonas-eberle/gee-atmcorr-S2/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// Pipeline runs the full atmospheric correction for one image request.
// Band pipelines are independent given the resolved SceneContext, so
// they fan out onto a worker group bounded by Concurrency; the bound
// should match the solver's safe invocation rate.
type Pipeline struct {
	Resolver    *Resolver
	Solver      sixs.Solver
	Concurrency int
	LogContext  util.LogContext
}

// Request describes one correction run. Bands are corrected
// independently and composited in the order listed, which is the
// caller-declared priority (e.g. red, green, blue for a composite).
type Request struct {
	Point     *geojson.Point
	Date      time.Time
	Lookahead time.Duration
	Bands     []string
	TOA       map[string]*model.Raster
}

// BandCoefficients are the per-band quantities needed to apply the
// inversion to pixels elsewhere
type BandCoefficients struct {
	Band               string  `json:"band"`
	RadianceMultiplier float64 `json:"radianceMultiplier"`
	PathRadiance       float64 `json:"pathRadiance"`
	Transmissivity     float64 `json:"transmissivity"`
	TotalIrradiance    float64 `json:"totalIrradiance"`
	EarthSunDistanceAU float64 `json:"earthSunDistanceAU"`
}

// Correct resolves the scene context once, corrects every requested
// band in parallel, and composites the results in request order. A
// failed band aborts this composite with a BandError naming the band;
// other correction requests are unaffected.
func (p *Pipeline) Correct(ctx context.Context, request Request) (*model.CorrectedImage, error) {
	start := time.Now()

	scene, descriptors, err := p.Resolver.Resolve(ctx, request.Point, request.Date, request.Lookahead, request.Bands)
	if err != nil {
		return nil, err
	}

	for _, band := range request.Bands {
		if _, ok := request.TOA[band]; !ok {
			return nil, fmt.Errorf("No TOA reflectance raster supplied for band %s", band)
		}
	}

	corrected := make([]model.BandRaster, len(descriptors))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.concurrency())
	for i, descriptor := range descriptors {
		i, descriptor := i, descriptor
		group.Go(func() error {
			raster, err := p.correctBand(groupCtx, scene, descriptor, request.TOA[descriptor.ID])
			metrics.RecordBandCorrection(err)
			if err != nil {
				return model.BandError{Band: descriptor.ID, Err: err}
			}
			corrected[i] = model.BandRaster{Band: descriptor.ID, Raster: raster}
			return nil
		})
	}

	// Compositing barrier: every band must finish before stacking.
	if err = group.Wait(); err != nil {
		return nil, err
	}

	image, err := Compose(corrected)
	if err != nil {
		return nil, err
	}

	metrics.ObserveCorrectionDuration(time.Since(start).Seconds())
	util.LogInfo(p.LogContext, fmt.Sprintf("Corrected %d bands in %.2fs", len(corrected), time.Since(start).Seconds()))
	return image, nil
}

// correctBand runs the strict linear per-band pipeline:
// build config → solve → invert
func (p *Pipeline) correctBand(ctx context.Context, scene *model.SceneContext, band model.BandDescriptor, toa *model.Raster) (*model.Raster, error) {
	config, err := sixs.BuildConfig(scene, band)
	if err != nil {
		return nil, err
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	outputs, err := p.Solver.Run(ctx, config)
	metrics.RecordSolverInvocation(err)
	if err != nil {
		return nil, err
	}

	return Invert(toa, band, scene, outputs)
}

// Coefficients resolves the scene and returns the per-band correction
// coefficients without touching pixels, so external tooling can apply
// the inversion itself
func (p *Pipeline) Coefficients(ctx context.Context, point *geojson.Point, date time.Time, lookahead time.Duration, bands []string) (*model.SceneContext, []BandCoefficients, error) {
	scene, descriptors, err := p.Resolver.Resolve(ctx, point, date, lookahead, bands)
	if err != nil {
		return nil, nil, err
	}

	coefficients := make([]BandCoefficients, len(descriptors))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.concurrency())
	for i, descriptor := range descriptors {
		i, descriptor := i, descriptor
		group.Go(func() error {
			multiplier, err := RadianceMultiplier(descriptor, scene)
			if err != nil {
				return model.BandError{Band: descriptor.ID, Err: err}
			}

			config, err := sixs.BuildConfig(scene, descriptor)
			if err != nil {
				return model.BandError{Band: descriptor.ID, Err: err}
			}
			if err = groupCtx.Err(); err != nil {
				return err
			}
			outputs, err := p.Solver.Run(groupCtx, config)
			metrics.RecordSolverInvocation(err)
			if err != nil {
				return model.BandError{Band: descriptor.ID, Err: err}
			}

			coefficients[i] = BandCoefficients{
				Band:               descriptor.ID,
				RadianceMultiplier: multiplier,
				PathRadiance:       outputs.PathRadiance,
				Transmissivity:     outputs.TransmissivityAbsorption * outputs.TransmissivityScattering,
				TotalIrradiance:    outputs.DirectSolarIrradiance + outputs.DiffuseSolarIrradiance,
				EarthSunDistanceAU: EarthSunDistanceAU(scene.DayOfYear()),
			}
			return nil
		})
	}

	if err = group.Wait(); err != nil {
		return nil, nil, err
	}
	return scene, coefficients, nil
}

func (p *Pipeline) concurrency() int {
	if p.Concurrency > 0 {
		return p.Concurrency
	}
	return util.GetCorrectionConcurrency()
}
