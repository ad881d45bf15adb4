package terrain

import (
	"github.com/jonas-eberle/gee-atmcorr-S2/util"
)

// Context is the context for a terrain provider operation
type Context struct {
	TerrainURL string
	sessionID  string
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

// Input is a terrain elevation query
type Input struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Output is a terrain elevation response
type Output struct {
	ElevationMeters float64 `json:"elevationMeters"`
	Found           bool    `json:"found"`
}
