// Package terrain queries the elevation provider for the mean target
// elevation at a geographic point.
package terrain

import (
	"context"

	"github.com/jonas-eberle/gee-atmcorr-S2/model"
	"github.com/jonas-eberle/gee-atmcorr-S2/util"
	"github.com/venicegeo/geojson-go/geojson"
)

var httpRequestKnownJSONWithObject = util.ReqByObjJSON

// Client is a terrain provider bound to a Context
type Client struct {
	Context *Context
}

// NewClient creates a terrain client from environment configuration
func NewClient() *Client {
	return &Client{Context: &Context{TerrainURL: util.GetTerrainURL()}}
}

// MeanElevation returns the mean elevation at the point in meters
func (c *Client) MeanElevation(ctx context.Context, point *geojson.Point) (float64, error) {
	return QueryMeanElevation(ctx, c.Context, point)
}

// QueryMeanElevation performs a single elevation query against the provider
func QueryMeanElevation(ctx context.Context, tc *Context, point *geojson.Point) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	input := Input{Lon: point.Coordinates[0], Lat: point.Coordinates[1]}
	var out Output

	util.LogAudit(tc, util.LogAuditInput{
		Actor: "anon user", Action: "POST", Actee: tc.TerrainURL, Message: "Requesting mean elevation", Severity: util.INFO,
	})
	if _, err := httpRequestKnownJSONWithObject(tc, "POST", tc.TerrainURL, "", input, &out); err != nil {
		return 0, err
	}
	util.LogAudit(tc, util.LogAuditInput{
		Actor: tc.TerrainURL, Action: "POST response", Actee: "anon user", Message: "Retrieving mean elevation", Severity: util.INFO,
	})

	if !out.Found {
		return 0, model.MissingElevationError{Point: point}
	}
	return out.ElevationMeters, nil
}
