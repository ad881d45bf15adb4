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

// Package catalog queries a remote scene catalog for the earliest scene
// covering a point on or after a requested date, together with the
// per-band metadata the correction pipeline needs.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jonas-eberle/gee-atmcorr-S2/model"
	"github.com/jonas-eberle/gee-atmcorr-S2/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// Client is a scene catalog bound to a Context
type Client struct {
	Context *Context
}

// NewClient creates a catalog client from environment configuration
func NewClient() *Client {
	return &Client{Context: &Context{
		BaseCatalogURL: util.GetSceneCatalogURL(),
		CatalogKey:     util.GetSceneCatalogKey(),
	}}
}

// FindEarliestSceneOnOrAfter returns the earliest catalog scene covering
// the point within the lookahead window after the given date
func (c *Client) FindEarliestSceneOnOrAfter(ctx context.Context, point *geojson.Point, date time.Time, lookahead time.Duration) (*model.SceneMetadata, error) {
	options := SearchOptions{Point: point, AcquiredDate: date, Lookahead: lookahead}
	return GetEarliestScene(ctx, options, c.Context)
}

// GetEarliestScene searches the catalog and returns the earliest scene
// matching the options
func GetEarliestScene(ctx context.Context, options SearchOptions, context *Context) (*model.SceneMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var req request
	req.Filter.Type = "AndFilter"
	req.Filter.Config = make([]interface{}, 0)
	if options.Point != nil {
		req.Filter.Config = append(req.Filter.Config, objectFilter{Type: "GeometryFilter", FieldName: "geometry", Config: options.Point})
	}
	dc := dateConfig{
		GTE: options.AcquiredDate.UTC().Format(model.StandardTimeLayout),
		LTE: options.AcquiredDate.Add(options.Lookahead).UTC().Format(model.StandardTimeLayout),
	}
	req.Filter.Config = append(req.Filter.Config, objectFilter{Type: "DateRangeFilter", FieldName: "acquired", Config: dc})

	requestBody, err := json.Marshal(req)
	if err != nil {
		return nil, util.LogSimpleErr(context, fmt.Sprintf("Failed to marshal request object %#v.", req), err)
	}

	response, err := catalogRequest(ctx, catalogRequestInput{method: "POST", inputURL: "catalog/v1/search", body: requestBody, contentType: "application/json"}, context)
	if err != nil {
		return nil, util.LogSimpleErr(context, fmt.Sprintf("Failed to complete scene catalog request %#v.", string(requestBody)), err)
	}
	switch {
	case (response.StatusCode >= 400) && (response.StatusCode < 500):
		message := fmt.Sprintf("Failed to discover scenes from the catalog: %v. ", response.Status)
		err := util.HTTPErr{Status: response.StatusCode, Message: message}
		util.LogAlert(context, message)
		return nil, err
	case response.StatusCode >= 500:
		return nil, util.LogSimpleErr(context, "Failed to discover scenes from the catalog.", errors.New(response.Status))
	default:
		//no op
	}

	defer response.Body.Close()
	responseBody, _ := io.ReadAll(response.Body)

	scenes, err := parseSearchResults(context, responseBody)
	if err != nil {
		return nil, err
	}

	return earliestOnOrAfter(scenes, options)
}

// earliestOnOrAfter picks the earliest scene acquired inside the search
// window; catalogs are not required to return results in time order
func earliestOnOrAfter(scenes []model.SceneMetadata, options SearchOptions) (*model.SceneMetadata, error) {
	windowEnd := options.AcquiredDate.Add(options.Lookahead)

	var earliest *model.SceneMetadata
	for i := range scenes {
		scene := &scenes[i]
		if scene.AcquiredDate.Before(options.AcquiredDate) || scene.AcquiredDate.After(windowEnd) {
			continue
		}
		if earliest == nil || scene.AcquiredDate.Before(earliest.AcquiredDate) {
			earliest = scene
		}
	}

	if earliest == nil {
		return nil, model.NoSceneFoundError{Point: options.Point, After: options.AcquiredDate, Lookahead: options.Lookahead}
	}
	return earliest, nil
}

// catalogRequest performs the request
func catalogRequest(ctx context.Context, input catalogRequestInput, context *Context) (*http.Response, error) {
	inputURL := input.inputURL
	baseURL, err := url.Parse(context.BaseCatalogURL)
	if err != nil {
		return nil, util.LogSimpleErr(context, fmt.Sprintf("Failed to parse %v into a URL.", context.BaseCatalogURL), err)
	}
	parsedRelativeURL, _ := url.Parse(input.inputURL)
	inputURL = baseURL.ResolveReference(parsedRelativeURL).String()

	request, err := http.NewRequestWithContext(ctx, input.method, inputURL, bytes.NewBuffer(input.body))
	if err != nil {
		return nil, util.LogSimpleErr(context, fmt.Sprintf("Failed to make a new HTTP request for %v.", inputURL), err)
	}
	if input.contentType != "" {
		request.Header.Set("Content-Type", input.contentType)
	}
	if context.CatalogKey != "" {
		request.Header.Set("Authorization", "Bearer "+context.CatalogKey)
	}

	util.LogAudit(context, util.LogAuditInput{Actor: "catalog/catalogRequest", Action: input.method, Actee: inputURL, Message: "Requesting scene data from the catalog", Severity: util.INFO})
	response, err := util.HTTPClient().Do(request)
	if err == nil {
		util.LogAudit(context, util.LogAuditInput{Actor: inputURL, Action: input.method + " response", Actee: "catalog/catalogRequest", Message: "Receiving scene data from the catalog", Severity: util.INFO})
	}
	return response, err
}

type catalogRequestInput struct {
	method      string
	inputURL    string // URL may be relative or absolute based on BaseCatalogURL
	body        []byte
	contentType string
}
