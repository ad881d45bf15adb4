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

package util

import (
	"crypto/rand"
	"fmt"
	"log"
)

// Severity levels for audit messages, patterned after RFC 5424
const (
	ERROR = 3
	WARN  = 4
	INFO  = 6
)

// LogContext is the interface providing the identifying information
// that every log line carries
type LogContext interface {
	AppName() string
	SessionID() string
	LogRootDir() string
}

// BasicLogContext is a minimal LogContext for operations that have no
// richer context of their own
type BasicLogContext struct {
	sessionID string
}

// AppName returns the name of this application
func (c *BasicLogContext) AppName() string {
	return "gee-atmcorr-s2"
}

// SessionID returns a session ID, creating one if needed
func (c *BasicLogContext) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *BasicLogContext) LogRootDir() string {
	return ""
}

// LogAuditInput holds the fields of a single audit record
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity int
}

// LogAudit writes an audit record in a fixed actor/action/actee format
func LogAudit(ctx LogContext, input LogAuditInput) {
	log.Printf("[%s:%s] AUDIT(%d) %s -> %s -> %s :: %s",
		ctx.AppName(), ctx.SessionID(), input.Severity, input.Actor, input.Action, input.Actee, input.Message)
}

// LogInfo logs an informational message
func LogInfo(ctx LogContext, message string) {
	log.Printf("[%s:%s] INFO %s", ctx.AppName(), ctx.SessionID(), message)
}

// LogAlert logs a message that requires operator attention but is not
// tied to a particular error value
func LogAlert(ctx LogContext, message string) {
	log.Printf("[%s:%s] ALERT %s", ctx.AppName(), ctx.SessionID(), message)
}

// LogSimpleErr logs a message and its underlying error, and returns an
// error wrapping both for the caller to propagate
func LogSimpleErr(ctx LogContext, message string, err error) error {
	log.Printf("[%s:%s] ERROR %s %v", ctx.AppName(), ctx.SessionID(), message, err)
	return fmt.Errorf("%s%v", message, err)
}

// Error is a loggable error with both an operator-facing and a
// user-facing message, plus whatever request context is available
type Error struct {
	LogMsg     string
	SimpleMsg  string
	Response   string
	URL        string
	HTTPStatus int
}

// Error implements the error interface
func (e Error) Error() string {
	if e.SimpleMsg != "" {
		return e.SimpleMsg
	}
	return e.LogMsg
}

// Log writes the full detail of the error to the log, prefixed as
// requested, and returns the error in its user-facing form
func (e Error) Log(ctx LogContext, prefix string) error {
	msg := e.LogMsg
	if prefix != "" {
		msg = prefix + ": " + msg
	}
	if e.URL != "" {
		msg += fmt.Sprintf("\nURL: %s", e.URL)
	}
	if e.Response != "" {
		msg += fmt.Sprintf("\nResponse: %s", e.Response)
	}
	if e.HTTPStatus != 0 {
		msg += fmt.Sprintf("\nHTTP Status: %d", e.HTTPStatus)
	}
	log.Printf("[%s:%s] ERROR %s", ctx.AppName(), ctx.SessionID(), msg)
	return e
}

// HTTPErr is an error that carries an HTTP status code for handlers to
// report to their clients
type HTTPErr struct {
	Status  int
	Message string
}

// Error implements the error interface
func (e HTTPErr) Error() string {
	return e.Message
}

// PsuUUID generates a pseudorandom UUID-shaped string for session
// identification; it makes no RFC 4122 variant claims
func PsuUUID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:]), nil
}
