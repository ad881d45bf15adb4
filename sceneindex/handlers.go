package sceneindex

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jonas-eberle/gee-atmcorr-S2/model"
	"github.com/jonas-eberle/gee-atmcorr-S2/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// DiscoverHandler is a handler for /localindex/discover
// @Title localIndexDiscoverHandler
// @Description finds the earliest indexed scene covering a point
// @Accept  plain
// @Param   lon          query   float   true         "Longitude of the target point"
// @Param   lat          query   float   true         "Latitude of the target point"
// @Param   acquiredDate query   string  true         "The minimum (earliest) acquired date, as RFC 3339"
// @Param   lookaheadDays query  int     false        "Search window after acquiredDate, in days"
// @Success 200 {object}  geojson.Feature
// @Failure 400 {object}  string
// @Router /localindex/discover [get]
type DiscoverHandler struct {
	Context Context
	Store   *Store
}

// NewDiscoverHandler creates a new handler using configuration
// from environment variables
func NewDiscoverHandler(connectionProvider ConnectionProvider) (*DiscoverHandler, error) {
	database, err := connectionProvider(&util.BasicLogContext{})
	if err != nil {
		return nil, err
	}

	return &DiscoverHandler{
		Context: Context{DB: database},
		Store:   &Store{DB: database},
	}, nil
}

// ServeHTTP implements the http.Handler interface for the DiscoverHandler type
func (h DiscoverHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	point, err := pointFromForm(r)
	if err != nil {
		util.LogSimpleErr(&h.Context, err.Error(), err)
		util.HTTPError(r, w, &h.Context, err.Error(), http.StatusBadRequest)
		return
	}

	acquiredDate, err := time.Parse(time.RFC3339, r.FormValue("acquiredDate"))
	if err != nil {
		message := fmt.Sprintf("Acquired date value of %v is invalid.", r.FormValue("acquiredDate"))
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}

	lookahead := 30 * 24 * time.Hour
	if r.FormValue("lookaheadDays") != "" {
		var days int
		if _, err = fmt.Sscanf(r.FormValue("lookaheadDays"), "%d", &days); err != nil || days <= 0 {
			message := fmt.Sprintf("The lookaheadDays value of %v is invalid", r.FormValue("lookaheadDays"))
			util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
			return
		}
		lookahead = time.Duration(days) * 24 * time.Hour
	}

	scene, err := h.Store.FindEarliestSceneOnOrAfter(r.Context(), point, acquiredDate, lookahead)
	if err != nil {
		status := http.StatusInternalServerError
		if model.IsDataUnavailable(err) {
			status = http.StatusNotFound
		}
		message := fmt.Sprintf("Error searching the scene index: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, status)
		return
	}

	feature, err := scene.GeoJSONFeature()
	if err != nil {
		message := fmt.Sprintf("Error converting to feature: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(feature.String()))
}

func pointFromForm(r *http.Request) (*geojson.Point, error) {
	var lon, lat float64
	if _, err := fmt.Sscanf(r.FormValue("lon"), "%g", &lon); err != nil {
		return nil, fmt.Errorf("The lon value of %v is invalid", r.FormValue("lon"))
	}
	if _, err := fmt.Sscanf(r.FormValue("lat"), "%g", &lat); err != nil {
		return nil, fmt.Errorf("The lat value of %v is invalid", r.FormValue("lat"))
	}
	return geojson.NewPoint([]float64{lon, lat}), nil
}
