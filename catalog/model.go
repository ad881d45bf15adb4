package catalog

import (
	"time"

	"github.com/jonas-eberle/gee-atmcorr-S2/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// Context is the context for a scene catalog operation
type Context struct {
	BaseCatalogURL string
	CatalogKey     string
	sessionID      string
}

// AppName returns the name of this application
func (c *Context) AppName() string {
	return "gee-atmcorr-s2"
}

// SessionID returns a session ID, creating one if needed
func (c *Context) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = util.PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *Context) LogRootDir() string {
	return ""
}

// SearchOptions are the options for an earliest-scene search
type SearchOptions struct {
	Point        *geojson.Point
	AcquiredDate time.Time
	Lookahead    time.Duration
}

type request struct {
	Filter filter `json:"filter"`
}

type filter struct {
	Type   string        `json:"type"`
	Config []interface{} `json:"config"`
}

type objectFilter struct {
	Type      string      `json:"type"`
	FieldName string      `json:"field_name"`
	Config    interface{} `json:"config"`
}

type dateConfig struct {
	GTE string `json:"gte,omitempty"`
	LTE string `json:"lte,omitempty"`
}
