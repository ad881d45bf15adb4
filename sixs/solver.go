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

package sixs

import (
	"context"

	"github.com/jonas-eberle/gee-atmcorr-S2/model"
	"github.com/jonas-eberle/gee-atmcorr-S2/util"
)

var httpRequestKnownJSONWithObject = util.ReqByObjJSON

// Solver runs one radiative transfer computation. Run is synchronous
// and must treat the Config as read-only.
type Solver interface {
	Run(ctx context.Context, config *Config) (*Outputs, error)
}

// Context is the context for a solver operation
type Context struct {
	SixSURL   string
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

// HTTPSolver invokes a 6S solver service over HTTP
type HTTPSolver struct {
	Context *Context
}

// NewHTTPSolver creates a solver client from environment configuration
func NewHTTPSolver() *HTTPSolver {
	return &HTTPSolver{Context: &Context{SixSURL: util.GetSixSURL()}}
}

type runResponse struct {
	Outputs *Outputs `json:"outputs"`
	Error   string   `json:"error,omitempty"`
}

// Run submits the configuration to the solver service and returns its
// four calibration quantities plus path radiance
func (s *HTTPSolver) Run(ctx context.Context, config *Config) (*Outputs, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out runResponse
	util.LogAudit(s.Context, util.LogAuditInput{
		Actor: "anon user", Action: "POST", Actee: s.Context.SixSURL, Message: "Invoking radiative transfer solver", Severity: util.INFO,
	})
	if _, err := httpRequestKnownJSONWithObject(s.Context, "POST", s.Context.SixSURL, "", config, &out); err != nil {
		return nil, model.SolverExecutionError{Band: config.ResponseCurve, Detail: "solver request failed", Err: err}
	}
	util.LogAudit(s.Context, util.LogAuditInput{
		Actor: s.Context.SixSURL, Action: "POST response", Actee: "anon user", Message: "Retrieving solver outputs", Severity: util.INFO,
	})

	if out.Error != "" {
		return nil, model.SolverExecutionError{Band: config.ResponseCurve, Detail: out.Error}
	}
	if out.Outputs == nil {
		return nil, model.SolverExecutionError{Band: config.ResponseCurve, Detail: "solver returned no outputs"}
	}
	return out.Outputs, nil
}
