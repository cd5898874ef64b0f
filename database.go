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
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Database runs administrative operations against one database through a
// Channel. It holds no mutable state and is safe for concurrent use.
//
// Every operation returns an Op; call Future, Then or Await on it to start
// the operation.
type Database struct {
	client Channel
	name   string
	logger *zap.Logger
}

// NewDatabase creates a handle to the named database reached through ch.
func NewDatabase(ch Channel, name string) *Database {
	return &Database{
		client: ch,
		name:   name,
		logger: zap.NewNop(),
	}
}

// Client returns the channel the database is reached through.
func (db *Database) Client() Channel {
	return db.client
}

// Name returns the database name.
func (db *Database) Name() string {
	return db.name
}

func (db *Database) String() string {
	return fmt.Sprintf("Database(%q)", db.name)
}

// Query runs command scoped to this database and returns the result set
// unchanged.
func (db *Database) Query(ctx context.Context, command string, opts ...QueryOption) *Op[*ResultSet] {
	req := db.request(command, opts...)
	return NewOp(ctx, func(ctx context.Context) (*ResultSet, error) {
		return db.dispatch(ctx, req)
	})
}

// GetSeries lists the series of the database in server order. Against
// InfluxDB 1.x this is a single Series named "results" whose Tags are the
// series keys.
func (db *Database) GetSeries(ctx context.Context) *Op[[]Series] {
	return NewOp(ctx, func(ctx context.Context) ([]Series, error) {
		rs, err := db.dispatch(ctx, db.request(showSeriesCommand()))
		if err != nil {
			return nil, err
		}
		r, err := rs.Result(0)
		if err != nil {
			return nil, err
		}
		items := r.Items()
		series := make([]Series, 0, len(items))
		for _, item := range items {
			series = append(series, Series{
				Name: item.Name,
				Tags: append([]string{}, item.Values...),
			})
		}
		return series, nil
	})
}

// DropSeries drops series, optionally restricted to a measurement and to
// series carrying all of the given tag values.
func (db *Database) DropSeries(ctx context.Context, measurement string, tags map[string]string) *Op[struct{}] {
	return db.exec(ctx, dropSeriesCommand(measurement, tags))
}

// GrantPrivilegeTo grants privilege on this database to the referenced user.
// An invalid UserRef is reported right away and nothing is sent.
func (db *Database) GrantPrivilegeTo(ctx context.Context, privilege Privilege, user UserRef) (*Op[struct{}], error) {
	username, err := user.Name()
	if err != nil {
		return nil, err
	}
	return NewOp(ctx, func(ctx context.Context) (struct{}, error) {
		return db.client.GrantPrivilege(ctx, privilege, username, db.name).Await(ctx)
	}), nil
}

// RevokePrivilegeFrom revokes privilege on this database from the referenced
// user. An invalid UserRef is reported right away and nothing is sent.
func (db *Database) RevokePrivilegeFrom(ctx context.Context, privilege Privilege, user UserRef) (*Op[struct{}], error) {
	username, err := user.Name()
	if err != nil {
		return nil, err
	}
	return NewOp(ctx, func(ctx context.Context) (struct{}, error) {
		return db.client.RevokePrivilege(ctx, privilege, username, db.name).Await(ctx)
	}), nil
}

// GetRetentionPolicies lists the retention policies of the database. The
// server is asked every time.
func (db *Database) GetRetentionPolicies(ctx context.Context) *Op[[]*RetentionPolicy] {
	return NewOp(ctx, func(ctx context.Context) ([]*RetentionPolicy, error) {
		points, err := db.retentionPolicyPoints(ctx)
		if err != nil {
			return nil, err
		}
		rps := make([]*RetentionPolicy, 0, len(points))
		for _, p := range points {
			rp, err := db.parseRetentionPolicy(p)
			if err != nil {
				return nil, err
			}
			rps = append(rps, rp)
		}
		return rps, nil
	})
}

// GetRetentionPolicyNames lists only the names of the retention policies.
func (db *Database) GetRetentionPolicyNames(ctx context.Context) *Op[[]string] {
	return NewOp(ctx, func(ctx context.Context) ([]string, error) {
		points, err := db.retentionPolicyPoints(ctx)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(points))
		for _, p := range points {
			name, err := p.String("name")
			if err != nil {
				return nil, err
			}
			names = append(names, name)
		}
		return names, nil
	})
}

// CreateRetentionPolicy creates a retention policy and returns it as created,
// without reading it back.
func (db *Database) CreateRetentionPolicy(ctx context.Context, name, duration string, replication int, isDefault bool) *Op[*RetentionPolicy] {
	return NewOp(ctx, func(ctx context.Context) (*RetentionPolicy, error) {
		cmd := createRetentionPolicyCommand(db.name, name, duration, replication, isDefault)
		if _, err := db.dispatch(ctx, db.request(cmd)); err != nil {
			return nil, err
		}
		return &RetentionPolicy{
			database:    db,
			Name:        name,
			Duration:    duration,
			Replication: replication,
			Default:     isDefault,
		}, nil
	})
}

// AlterOptions lists the retention policy attributes to change. Zero values
// are left untouched.
type AlterOptions struct {
	Duration    string
	Replication int
	Default     bool
}

// AlterRetentionPolicy changes the given attributes of a retention policy.
func (db *Database) AlterRetentionPolicy(ctx context.Context, name string, opts AlterOptions) *Op[struct{}] {
	return db.exec(ctx, alterRetentionPolicyCommand(db.name, name, opts))
}

// DropRetentionPolicy drops a retention policy.
func (db *Database) DropRetentionPolicy(ctx context.Context, name string) *Op[struct{}] {
	return db.exec(ctx, dropRetentionPolicyCommand(db.name, name))
}

// Drop drops the database.
func (db *Database) Drop(ctx context.Context) *Op[struct{}] {
	return NewOp(ctx, func(ctx context.Context) (struct{}, error) {
		return db.client.DropDatabase(ctx, db.name).Await(ctx)
	})
}

func (db *Database) request(command string, opts ...QueryOption) *QueryRequest {
	req := NewQueryRequest(command, opts...)
	req.Database = db.name
	return req
}

func (db *Database) exec(ctx context.Context, command string) *Op[struct{}] {
	req := db.request(command)
	return NewOp(ctx, func(ctx context.Context) (struct{}, error) {
		_, err := db.dispatch(ctx, req)
		return struct{}{}, err
	})
}

func (db *Database) dispatch(ctx context.Context, req *QueryRequest) (*ResultSet, error) {
	db.logger.Debug("dispatching command", zap.String("command", req.Command))
	return db.client.Query(ctx, req).Await(ctx)
}

func (db *Database) retentionPolicyPoints(ctx context.Context) ([]Point, error) {
	rs, err := db.dispatch(ctx, db.request(showRetentionPoliciesCommand(db.name)))
	if err != nil {
		return nil, err
	}
	r, err := rs.Result(0)
	if err != nil {
		return nil, err
	}
	return r.Points(), nil
}

func (db *Database) parseRetentionPolicy(p Point) (*RetentionPolicy, error) {
	name, err := p.String("name")
	if err != nil {
		return nil, err
	}
	duration, err := p.String("duration")
	if err != nil {
		return nil, err
	}
	replication, err := p.Int("replicaN")
	if err != nil {
		return nil, err
	}
	isDefault, err := p.Bool("default")
	if err != nil {
		return nil, err
	}
	return &RetentionPolicy{
		database:    db,
		Name:        name,
		Duration:    duration,
		Replication: replication,
		Default:     isDefault,
	}, nil
}
