package sceneindex

import (
	"database/sql"
	"time"

	"github.com/jonas-eberle/gee-atmcorr-S2/util"
)

// ConnectionProvider is a function that can provide a database connection.
type ConnectionProvider func(util.LogContext) (*sql.DB, error)

// IndexedScene is one row of the local scene index
type IndexedScene struct {
	ProductID       string
	AcquisitionDate time.Time
	SensorName      string
	SolarZenithDeg  float64
	ESUN            map[string]float64
	MinLon          float64
	MinLat          float64
	MaxLon          float64
	MaxLat          float64
}

// Context is the context for a local index operation
type Context struct {
	DB        *sql.DB
	sessionID string
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
