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
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

var sharedClient = &http.Client{Timeout: 90 * time.Second}

// HTTPClient returns the shared HTTP client used for all outbound
// provider calls
func HTTPClient() *http.Client {
	return sharedClient
}

// ReqByObjJSON marshals inObj as the JSON body of a request to the given
// URL and unmarshals the response body into outObj. The response is
// returned for status inspection; the body has already been consumed.
func ReqByObjJSON(ctx LogContext, method, url, authKey string, inObj, outObj interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if inObj != nil {
		requestBody, err := json.Marshal(inObj)
		if err != nil {
			return nil, LogSimpleErr(ctx, fmt.Sprintf("Failed to marshal request object %#v.", inObj), err)
		}
		bodyReader = bytes.NewBuffer(requestBody)
	}

	request, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, LogSimpleErr(ctx, fmt.Sprintf("Failed to make a new HTTP request for %v.", url), err)
	}
	request.Header.Set("Content-Type", "application/json")
	if authKey != "" {
		request.Header.Set("Authorization", authKey)
	}

	response, err := HTTPClient().Do(request)
	if err != nil {
		return nil, LogSimpleErr(ctx, fmt.Sprintf("Failed to complete HTTP request for %v.", url), err)
	}
	defer response.Body.Close()

	responseBody, _ := io.ReadAll(response.Body)
	if response.StatusCode >= 400 {
		return response, HTTPErr{Status: response.StatusCode,
			Message: fmt.Sprintf("Request to %v failed: %v. %s", url, response.Status, string(responseBody))}
	}

	if outObj != nil {
		if err = json.Unmarshal(responseBody, outObj); err != nil {
			plErr := Error{LogMsg: "Failed to unmarshal response: " + err.Error(),
				Response:   string(responseBody),
				URL:        url,
				HTTPStatus: response.StatusCode}
			return response, plErr.Log(ctx, "")
		}
	}

	return response, nil
}

// HTTPError writes an error response to the client and audits it
func HTTPError(r *http.Request, w http.ResponseWriter, ctx LogContext, message string, status int) {
	LogAudit(ctx, LogAuditInput{Actor: "gee-atmcorr-s2", Action: "error response",
		Actee: r.URL.String(), Message: message, Severity: ERROR})
	http.Error(w, message, status)
}
