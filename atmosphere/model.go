package atmosphere

import (
	"github.com/jonas-eberle/gee-atmcorr-S2/util"
)

// Constituent names as the provider spells them
const (
	WaterVapor              = "waterVapor"
	Ozone                   = "ozone"
	AerosolOpticalThickness = "aerosolOpticalThickness"
)

// Context is the context for an atmospheric constituent operation
type Context struct {
	AtmosphereURL string
	sessionID     string
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

// Input is a constituent query; Dtg is the acquisition date-time group
type Input struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Dtg string  `json:"dtg"`
}

// Output is a constituent response
type Output struct {
	Value float64 `json:"value"`
	Found bool    `json:"found"`
}
