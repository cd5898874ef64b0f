/*
 * Copyright 2024 The asyncflux Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package asyncflux

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrNilCallback is returned when a nil callback is supplied.
	ErrNilCallback = errors.New("asyncflux: callback must not be nil")
	// ErrInvalidUserRef is returned when a UserRef holds neither a username
	// nor a User.
	ErrInvalidUserRef = errors.New("asyncflux: user reference must be a username or a User")
	// ErrInvalidPrivilege is returned for privileges outside READ, WRITE and ALL.
	ErrInvalidPrivilege = errors.New("asyncflux: privilege must be one of READ, WRITE or ALL")
	// ErrNoResult is returned when a statement result is not present in a ResultSet.
	ErrNoResult = errors.New("asyncflux: no such statement result")
)

// ServerError represents an error response from the InfluxDB server.
type ServerError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// Message is the error message reported by the server.
	Message string `json:"error"`
	// RequestID is the ID sent along with the request.
	RequestID string
}

func (e *ServerError) Error() string {
	if e.RequestID == "" {
		return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%d: %s (request %s)", e.StatusCode, e.Message, e.RequestID)
}

// QueryError is a failure reported by the server for a single statement.
type QueryError struct {
	StatementID int
	Message     string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("statement %d: %s", e.StatementID, e.Message)
}

// FieldError reports a result field that is missing or has an unexpected type.
type FieldError struct {
	Field string
	Value any
}

func (e *FieldError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("asyncflux: missing field %q", e.Field)
	}
	return fmt.Sprintf("asyncflux: unexpected value for field %q: %v (%T)", e.Field, e.Value, e.Value)
}

func checkStatusCodeOK(resp *http.Response, requestID string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	msg := string(data)
	if err != nil {
		return &ServerError{StatusCode: resp.StatusCode, Message: msg, RequestID: requestID}
	}
	errResp := ServerError{StatusCode: resp.StatusCode, RequestID: requestID}
	if err := json.Unmarshal(data, &errResp); err != nil || errResp.Message == "" {
		errResp.Message = msg
	}
	return &errResp
}

// sneakyBodyClose closes the body and ignores the error.
// This is useful to close the HTTP response body when we don't care about the error.
func sneakyBodyClose(body io.ReadCloser) {
	if body != nil {
		_ = body.Close()
	}
}
