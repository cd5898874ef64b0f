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
)

// RetentionPolicy is a snapshot of a retention policy of a database. It is
// not refreshed when the policy changes on the server.
type RetentionPolicy struct {
	database *Database

	// Name is the name of the policy.
	Name string `yaml:"name"`
	// Duration is how long data is kept, as an InfluxQL duration like "30d"
	// or "INF".
	Duration string `yaml:"duration"`
	// Replication is the number of copies kept in a cluster.
	Replication int `yaml:"replication"`
	// Default marks the policy writes go to when none is named.
	Default bool `yaml:"default"`
}

// Database returns the database the policy belongs to.
func (rp *RetentionPolicy) Database() *Database {
	return rp.database
}

// Alter changes the given attributes of the policy on the server. The
// snapshot itself is left as is; fetch the policies again to see the result.
func (rp *RetentionPolicy) Alter(ctx context.Context, opts AlterOptions) *Op[struct{}] {
	return rp.database.AlterRetentionPolicy(ctx, rp.Name, opts)
}

// Drop drops the policy on the server.
func (rp *RetentionPolicy) Drop(ctx context.Context) *Op[struct{}] {
	return rp.database.DropRetentionPolicy(ctx, rp.Name)
}

func (rp *RetentionPolicy) String() string {
	var database string
	if rp.database != nil {
		database = rp.database.Name()
	}
	return fmt.Sprintf("RetentionPolicy(%q, %q, %q, %d, %t)",
		database, rp.Name, rp.Duration, rp.Replication, rp.Default)
}
