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

package itcases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/viswind/asyncflux"
)

func TestRetentionPolicyLifecycle(t *testing.T) {
	c := NewClient(t)
	defer c.Close()

	ctx := context.Background()
	db := NewDatabase(t, c)

	rp, err := db.CreateRetentionPolicy(ctx, "one_week", "7d", 1, true).Await(ctx)
	require.NoError(t, err)
	require.Equal(t, "one_week", rp.Name)

	names, err := db.GetRetentionPolicyNames(ctx).Await(ctx)
	require.NoError(t, err)
	require.Contains(t, names, "one_week")

	_, err = rp.Alter(ctx, asyncflux.AlterOptions{Duration: "14d"}).Await(ctx)
	require.NoError(t, err)

	rps, err := db.GetRetentionPolicies(ctx).Await(ctx)
	require.NoError(t, err)
	var found *asyncflux.RetentionPolicy
	for _, p := range rps {
		if p.Name == "one_week" {
			found = p
		}
	}
	require.NotNil(t, found)
	require.Equal(t, "336h0m0s", found.Duration)
	require.Equal(t, 1, found.Replication)
	require.True(t, found.Default)

	done := make(chan error, 1)
	require.NoError(t, found.Drop(ctx).Then(func(_ struct{}, err error) {
		done <- err
	}))
	require.NoError(t, <-done)

	names, err = db.GetRetentionPolicyNames(ctx).Await(ctx)
	require.NoError(t, err)
	require.NotContains(t, names, "one_week")
}
