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

import "context"

// Channel transmits commands to the database server.
//
// Every method returns an Op so that callers of a Channel get the same
// future or callback choice as callers of Database.
type Channel interface {
	// Query executes an InfluxQL query.
	Query(ctx context.Context, req *QueryRequest) *Op[*ResultSet]
	// GrantPrivilege grants privilege on database to username.
	GrantPrivilege(ctx context.Context, privilege Privilege, username, database string) *Op[struct{}]
	// RevokePrivilege revokes privilege on database from username.
	RevokePrivilege(ctx context.Context, privilege Privilege, username, database string) *Op[struct{}]
	// DropDatabase drops the named database.
	DropDatabase(ctx context.Context, name string) *Op[struct{}]
}

// Epoch is the precision of timestamps returned by a query.
type Epoch string

const (
	EpochHour        Epoch = "h"
	EpochMinute      Epoch = "m"
	EpochSecond      Epoch = "s"
	EpochMillisecond Epoch = "ms"
	EpochMicrosecond Epoch = "u"
	EpochNanosecond  Epoch = "ns"
)

// QueryRequest is a query to be executed by a Channel.
type QueryRequest struct {
	// Command is the InfluxQL text, possibly several statements separated by ';'.
	Command string
	// Database scopes the query. Optional.
	Database string
	// Params are bound to $name placeholders in Command.
	Params map[string]any
	// Epoch selects the timestamp format. Empty means RFC3339.
	Epoch Epoch
	// RaiseErrors turns statement errors into a *QueryError.
	RaiseErrors bool
}

// QueryOption customizes a QueryRequest.
type QueryOption func(*QueryRequest)

// WithParams binds parameters to the query.
func WithParams(params map[string]any) QueryOption {
	return func(req *QueryRequest) {
		req.Params = params
	}
}

// WithEpoch sets the timestamp precision of the result.
func WithEpoch(epoch Epoch) QueryOption {
	return func(req *QueryRequest) {
		req.Epoch = epoch
	}
}

// WithRaiseErrors controls whether statement errors fail the query. It is on
// by default.
func WithRaiseErrors(raise bool) QueryOption {
	return func(req *QueryRequest) {
		req.RaiseErrors = raise
	}
}

// NewQueryRequest builds a QueryRequest with errors raised by default.
func NewQueryRequest(command string, opts ...QueryOption) *QueryRequest {
	req := &QueryRequest{
		Command:     command,
		RaiseErrors: true,
	}
	for _, opt := range opts {
		opt(req)
	}
	return req
}
