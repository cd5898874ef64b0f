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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/influxdata/influxql"
	"go.uber.org/zap"
)

// Client talks to an InfluxDB server over its HTTP API. It implements Channel
// and is safe for concurrent use.
type Client struct {
	config *Config
	http   *http.Client
	logger *zap.Logger
}

// Ensure Client implements Channel.
var _ Channel = (*Client)(nil)

// NewClient creates a new client.
func NewClient(config *Config) *Client {
	return &Client{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
		logger: config.logger(),
	}
}

// Close releases idle connections held by the client.
//
// You don't typically need to call this as the garbage collector will release
// the resources when the client is no longer referenced. However, it can be
// useful to call this if you want to release the resources immediately.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// Database returns a handle to the named database.
func (c *Client) Database(name string) *Database {
	db := NewDatabase(c, name)
	db.logger = c.logger.With(zap.String("database", name))
	return db
}

// Query executes req against the /query endpoint.
func (c *Client) Query(ctx context.Context, req *QueryRequest) *Op[*ResultSet] {
	return NewOp(ctx, func(ctx context.Context) (*ResultSet, error) {
		return c.query(ctx, req)
	})
}

// GrantPrivilege grants privilege on database to username.
func (c *Client) GrantPrivilege(ctx context.Context, privilege Privilege, username, database string) *Op[struct{}] {
	return NewOp(ctx, func(ctx context.Context) (struct{}, error) {
		if !privilege.Valid() {
			return struct{}{}, ErrInvalidPrivilege
		}
		return c.exec(ctx, grantCommand(privilege, username, database))
	})
}

// RevokePrivilege revokes privilege on database from username.
func (c *Client) RevokePrivilege(ctx context.Context, privilege Privilege, username, database string) *Op[struct{}] {
	return NewOp(ctx, func(ctx context.Context) (struct{}, error) {
		if !privilege.Valid() {
			return struct{}{}, ErrInvalidPrivilege
		}
		return c.exec(ctx, revokeCommand(privilege, username, database))
	})
}

// DropDatabase drops the named database.
func (c *Client) DropDatabase(ctx context.Context, name string) *Op[struct{}] {
	return NewOp(ctx, func(ctx context.Context) (struct{}, error) {
		return c.exec(ctx, "DROP DATABASE "+influxql.QuoteIdent(name))
	})
}

// CreateDatabase creates the named database and returns a handle to it.
func (c *Client) CreateDatabase(ctx context.Context, name string) *Op[*Database] {
	return NewOp(ctx, func(ctx context.Context) (*Database, error) {
		if _, err := c.exec(ctx, "CREATE DATABASE "+influxql.QuoteIdent(name)); err != nil {
			return nil, err
		}
		return c.Database(name), nil
	})
}

// GetDatabaseNames lists the databases on the server.
func (c *Client) GetDatabaseNames(ctx context.Context) *Op[[]string] {
	return NewOp(ctx, func(ctx context.Context) ([]string, error) {
		rs, err := c.query(ctx, NewQueryRequest("SHOW DATABASES"))
		if err != nil {
			return nil, err
		}
		r, err := rs.Result(0)
		if err != nil {
			return nil, err
		}
		var names []string
		for _, p := range r.Points() {
			name, err := p.String("name")
			if err != nil {
				return nil, err
			}
			names = append(names, name)
		}
		return names, nil
	})
}

// CreateUser creates a user, optionally with all privileges.
func (c *Client) CreateUser(ctx context.Context, username, password string, admin bool) *Op[User] {
	return NewOp(ctx, func(ctx context.Context) (User, error) {
		if _, err := c.exec(ctx, createUserCommand(username, password, admin)); err != nil {
			return User{}, err
		}
		return User{Name: username, Admin: admin}, nil
	})
}

// DropUser drops the referenced user.
func (c *Client) DropUser(ctx context.Context, ref UserRef) (*Op[struct{}], error) {
	username, err := ref.Name()
	if err != nil {
		return nil, err
	}
	return NewOp(ctx, func(ctx context.Context) (struct{}, error) {
		return c.exec(ctx, "DROP USER "+influxql.QuoteIdent(username))
	}), nil
}

// Users lists the users on the server.
func (c *Client) Users(ctx context.Context) *Op[[]User] {
	return NewOp(ctx, func(ctx context.Context) ([]User, error) {
		rs, err := c.query(ctx, NewQueryRequest("SHOW USERS"))
		if err != nil {
			return nil, err
		}
		r, err := rs.Result(0)
		if err != nil {
			return nil, err
		}
		var users []User
		for _, p := range r.Points() {
			name, err := p.String("user")
			if err != nil {
				return nil, err
			}
			admin, err := p.Bool("admin")
			if err != nil {
				return nil, err
			}
			users = append(users, User{Name: name, Admin: admin})
		}
		return users, nil
	})
}

// Ping checks that the server is reachable and returns its version.
func (c *Client) Ping(ctx context.Context) *Op[string] {
	return NewOp(ctx, func(ctx context.Context) (string, error) {
		u, err := url.Parse(c.config.Endpoint + "/ping")
		if err != nil {
			return "", err
		}
		resp, requestID, err := c.do(ctx, http.MethodGet, u, nil)
		if err != nil {
			return "", err
		}
		defer sneakyBodyClose(resp.Body)
		if err := checkStatusCodeOK(resp, requestID); err != nil {
			return "", err
		}
		return resp.Header.Get("X-Influxdb-Version"), nil
	})
}

func (c *Client) exec(ctx context.Context, command string) (struct{}, error) {
	_, err := c.query(ctx, NewQueryRequest(command))
	return struct{}{}, err
}

type queryResponse struct {
	Results []*Result `json:"results"`
	Err     string    `json:"error,omitempty"`
}

func (c *Client) query(ctx context.Context, request *QueryRequest) (*ResultSet, error) {
	u, err := url.Parse(c.config.Endpoint + "/query")
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("q", request.Command)
	if request.Database != "" {
		values.Set("db", request.Database)
	}
	if request.Epoch != "" {
		values.Set("epoch", string(request.Epoch))
	}
	if len(request.Params) > 0 {
		params, err := json.Marshal(request.Params)
		if err != nil {
			return nil, fmt.Errorf("encode params: %w", err)
		}
		values.Set("params", string(params))
	}

	method := http.MethodPost
	var body []byte
	if isReadOnly(request.Command) {
		method = http.MethodGet
		u.RawQuery = values.Encode()
	} else {
		body = []byte(values.Encode())
	}

	resp, requestID, err := c.do(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	defer sneakyBodyClose(resp.Body)
	if err := checkStatusCodeOK(resp, requestID); err != nil {
		c.logger.Warn("query failed",
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.Error(err))
		return nil, err
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var respData queryResponse
	if err := dec.Decode(&respData); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if respData.Err != "" {
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: respData.Err, RequestID: requestID}
	}

	if request.RaiseErrors {
		for _, r := range respData.Results {
			if r.Err != "" {
				return nil, &QueryError{StatementID: r.StatementID, Message: r.Err}
			}
		}
	}
	return &ResultSet{Results: respData.Results}, nil
}

func (c *Client) do(ctx context.Context, method string, u *url.URL, body []byte) (*http.Response, string, error) {
	var req *http.Request
	var err error
	if body == nil {
		req, err = http.NewRequestWithContext(ctx, method, u.String(), nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, u.String(), bytes.NewReader(body))
	}
	if err != nil {
		return nil, "", err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.config.Username != "" {
		req.SetBasicAuth(c.config.Username, c.config.Password)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	c.logger.Debug("sending request",
		zap.String("method", method),
		zap.String("path", u.Path),
		zap.String("request_id", requestID))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, requestID, err
	}
	return resp, requestID, nil
}
