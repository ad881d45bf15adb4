// Package atmosphere queries the atmospheric constituent provider for
// the water vapor column, ozone column, and aerosol optical thickness
// at a point and date. The three constituents are independent queries.
package atmosphere

import (
	"context"
	"time"

	"github.com/jonas-eberle/gee-atmcorr-S2/model"
	"github.com/jonas-eberle/gee-atmcorr-S2/util"
	"github.com/venicegeo/geojson-go/geojson"
)

var httpRequestKnownJSONWithObject = util.ReqByObjJSON

// Client is a constituent provider bound to a Context
type Client struct {
	Context *Context
}

// NewClient creates an atmosphere client from environment configuration
func NewClient() *Client {
	return &Client{Context: &Context{AtmosphereURL: util.GetAtmosphereURL()}}
}

// WaterVapor returns the water vapor column at the point and date
func (c *Client) WaterVapor(ctx context.Context, point *geojson.Point, date time.Time) (float64, error) {
	return QueryConstituent(ctx, c.Context, WaterVapor, point, date)
}

// Ozone returns the ozone column at the point and date
func (c *Client) Ozone(ctx context.Context, point *geojson.Point, date time.Time) (float64, error) {
	return QueryConstituent(ctx, c.Context, Ozone, point, date)
}

// AerosolOpticalThickness returns the 550nm aerosol optical thickness
// at the point and date
func (c *Client) AerosolOpticalThickness(ctx context.Context, point *geojson.Point, date time.Time) (float64, error) {
	return QueryConstituent(ctx, c.Context, AerosolOpticalThickness, point, date)
}

// QueryConstituent performs a single constituent query against the provider
func QueryConstituent(ctx context.Context, ac *Context, constituent string, point *geojson.Point, date time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	input := Input{
		Lon: point.Coordinates[0],
		Lat: point.Coordinates[1],
		Dtg: date.UTC().Format("2006-01-02-15-04"),
	}
	var out Output

	queryURL := ac.AtmosphereURL + "/" + constituent
	util.LogAudit(ac, util.LogAuditInput{
		Actor: "anon user", Action: "POST", Actee: queryURL, Message: "Requesting " + constituent, Severity: util.INFO,
	})
	if _, err := httpRequestKnownJSONWithObject(ac, "POST", queryURL, "", input, &out); err != nil {
		return 0, err
	}
	util.LogAudit(ac, util.LogAuditInput{
		Actor: queryURL, Action: "POST response", Actee: "anon user", Message: "Retrieving " + constituent, Severity: util.INFO,
	})

	if !out.Found {
		return 0, model.NoDataAtLocationError{Constituent: constituent, Point: point}
	}
	return out.Value, nil
}
