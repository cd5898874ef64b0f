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

package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/viswind/asyncflux"
)

// grantCmd represents the grant command
var grantCmd = &cobra.Command{
	Use:   "grant [READ|WRITE|ALL] [username]",
	Short: "Grant a privilege on the database to a user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		privilege, err := asyncflux.ParsePrivilege(args[0])
		if err != nil {
			return err
		}
		return withDatabase(cmd, func(ctx context.Context, db *asyncflux.Database) error {
			op, err := db.GrantPrivilegeTo(ctx, privilege, asyncflux.Username(args[1]))
			if err != nil {
				return err
			}
			_, err = op.Await(ctx)
			return err
		})
	},
}

// revokeCmd represents the revoke command
var revokeCmd = &cobra.Command{
	Use:   "revoke [READ|WRITE|ALL] [username]",
	Short: "Revoke a privilege on the database from a user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		privilege, err := asyncflux.ParsePrivilege(args[0])
		if err != nil {
			return err
		}
		return withDatabase(cmd, func(ctx context.Context, db *asyncflux.Database) error {
			op, err := db.RevokePrivilegeFrom(ctx, privilege, asyncflux.Username(args[1]))
			if err != nil {
				return err
			}
			_, err = op.Await(ctx)
			return err
		})
	},
}

// dropDatabaseCmd represents the drop-database command
var dropDatabaseCmd = &cobra.Command{
	Use:   "drop-database",
	Short: "Drop the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd, func(ctx context.Context, db *asyncflux.Database) error {
			_, err := db.Drop(ctx).Await(ctx)
			return err
		})
	},
}

func setupPrivilegeCommands() {
	rootCmd.AddCommand(grantCmd, revokeCmd, dropDatabaseCmd)
}
