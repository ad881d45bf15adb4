package correction

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jonas-eberle/gee-atmcorr-S2/model"
	"github.com/jonas-eberle/gee-atmcorr-S2/util"
	"github.com/venicegeo/geojson-go/geojson"
)

const defaultLookahead = 30 * 24 * time.Hour

// CoefficientsHandler is a handler for /coefficients
// @Title coefficientsHandler
// @Description resolves a scene and returns per-band correction coefficients
// @Accept  plain
// @Param   lon          query   float   true         "Longitude of the target point"
// @Param   lat          query   float   true         "Latitude of the target point"
// @Param   date         query   string  true         "The earliest acceptable acquisition date, as RFC 3339"
// @Param   lookaheadDays query  int     false        "Catalog search window after the date, in days"
// @Param   bands        query   string  true         "Comma-separated band IDs, in compositing order"
// @Success 200 {object}  geojson.Feature
// @Failure 400 {object}  string
// @Router /coefficients [get]
type CoefficientsHandler struct {
	Pipeline   *Pipeline
	LogContext util.LogContext
}

// NewCoefficientsHandler creates a new handler for the given pipeline
func NewCoefficientsHandler(pipeline *Pipeline) *CoefficientsHandler {
	return &CoefficientsHandler{Pipeline: pipeline, LogContext: &util.BasicLogContext{}}
}

// ServeHTTP implements the http.Handler interface for the CoefficientsHandler type
func (h CoefficientsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	lon, err := strconv.ParseFloat(r.FormValue("lon"), 64)
	if err != nil {
		util.HTTPError(r, w, h.LogContext, fmt.Sprintf("The lon value of %v is invalid", r.FormValue("lon")), http.StatusBadRequest)
		return
	}
	lat, err := strconv.ParseFloat(r.FormValue("lat"), 64)
	if err != nil {
		util.HTTPError(r, w, h.LogContext, fmt.Sprintf("The lat value of %v is invalid", r.FormValue("lat")), http.StatusBadRequest)
		return
	}
	date, err := time.Parse(time.RFC3339, r.FormValue("date"))
	if err != nil {
		util.HTTPError(r, w, h.LogContext, fmt.Sprintf("The date value of %v is invalid", r.FormValue("date")), http.StatusBadRequest)
		return
	}
	bands := strings.Split(r.FormValue("bands"), ",")
	if len(bands) == 0 || bands[0] == "" {
		util.HTTPError(r, w, h.LogContext, "At least one band must be requested", http.StatusBadRequest)
		return
	}

	lookahead := defaultLookahead
	if r.FormValue("lookaheadDays") != "" {
		days, err := strconv.Atoi(r.FormValue("lookaheadDays"))
		if err != nil || days <= 0 {
			util.HTTPError(r, w, h.LogContext, fmt.Sprintf("The lookaheadDays value of %v is invalid", r.FormValue("lookaheadDays")), http.StatusBadRequest)
			return
		}
		lookahead = time.Duration(days) * 24 * time.Hour
	}

	point := geojson.NewPoint([]float64{lon, lat})
	scene, coefficients, err := h.Pipeline.Coefficients(r.Context(), point, date, lookahead, bands)
	if err != nil {
		status := http.StatusInternalServerError
		if model.IsDataUnavailable(err) {
			status = http.StatusNotFound
		}
		message := fmt.Sprintf("Error computing correction coefficients: %v", err)
		util.LogSimpleErr(h.LogContext, message, err)
		util.HTTPError(r, w, h.LogContext, message, status)
		return
	}

	feature := coefficientsFeature(point, scene, coefficients)
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(feature.String()))
}

func coefficientsFeature(point *geojson.Point, scene *model.SceneContext, coefficients []BandCoefficients) *geojson.Feature {
	bands := make(map[string]interface{}, len(coefficients))
	order := make([]string, len(coefficients))
	for i, c := range coefficients {
		order[i] = c.Band
		bands[c.Band] = map[string]interface{}{
			"radianceMultiplier": c.RadianceMultiplier,
			"pathRadiance":       c.PathRadiance,
			"transmissivity":     c.Transmissivity,
			"totalIrradiance":    c.TotalIrradiance,
			"earthSunDistanceAU": c.EarthSunDistanceAU,
		}
	}

	feature := geojson.NewFeature(point, "", map[string]interface{}{
		"acquiredDate":     scene.AcquiredDate.Format(model.StandardTimeLayout),
		"solarZenithAngle": scene.SolarZenithDeg,
		"targetAltitudeKm": scene.TargetAltitudeKm,
		"waterVapor":       scene.WaterVapor,
		"ozone":            scene.Ozone,
		"aot550":           scene.AOT550,
		"bandOrder":        order,
		"bands":            bands,
	})
	feature.Bbox = feature.ForceBbox()
	return feature
}
