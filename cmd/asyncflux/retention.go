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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viswind/asyncflux"
)

var (
	rpDuration    string
	rpReplication int
	rpDefault     bool
	rpNamesOnly   bool
)

// retentionCmd represents the rp command
var retentionCmd = &cobra.Command{
	Use:     "rp",
	Aliases: []string{"retention-policies"},
	Short:   "Manage retention policies",
}

// listRetentionCmd represents the rp list command
var listRetentionCmd = &cobra.Command{
	Use:   "list",
	Short: "List the retention policies of the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd, func(ctx context.Context, db *asyncflux.Database) error {
			if rpNamesOnly {
				names, err := db.GetRetentionPolicyNames(ctx).Await(ctx)
				if err != nil {
					return err
				}
				return printYAML(cmd, names)
			}
			rps, err := db.GetRetentionPolicies(ctx).Await(ctx)
			if err != nil {
				return err
			}
			return printYAML(cmd, rps)
		})
	},
}

// createRetentionCmd represents the rp create command
var createRetentionCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a retention policy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if rpDuration == "" {
			return fmt.Errorf("--duration is required")
		}
		return withDatabase(cmd, func(ctx context.Context, db *asyncflux.Database) error {
			rp, err := db.CreateRetentionPolicy(ctx, args[0], rpDuration, rpReplication, rpDefault).Await(ctx)
			if err != nil {
				return err
			}
			return printYAML(cmd, rp)
		})
	},
}

// alterRetentionCmd represents the rp alter command
var alterRetentionCmd = &cobra.Command{
	Use:   "alter [name]",
	Short: "Alter a retention policy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := asyncflux.AlterOptions{Duration: rpDuration, Default: rpDefault}
		if cmd.Flags().Changed("replication") {
			opts.Replication = rpReplication
		}
		return withDatabase(cmd, func(ctx context.Context, db *asyncflux.Database) error {
			_, err := db.AlterRetentionPolicy(ctx, args[0], opts).Await(ctx)
			return err
		})
	},
}

// dropRetentionCmd represents the rp drop command
var dropRetentionCmd = &cobra.Command{
	Use:   "drop [name]",
	Short: "Drop a retention policy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd, func(ctx context.Context, db *asyncflux.Database) error {
			_, err := db.DropRetentionPolicy(ctx, args[0]).Await(ctx)
			return err
		})
	},
}

func setupRetentionCommands() {
	listRetentionCmd.Flags().BoolVar(&rpNamesOnly, "names", false, "Only print policy names")

	for _, c := range []*cobra.Command{createRetentionCmd, alterRetentionCmd} {
		c.Flags().StringVar(&rpDuration, "duration", "", "How long data is kept, e.g. 30d or INF")
		c.Flags().IntVar(&rpReplication, "replication", 1, "Number of copies kept in a cluster")
		c.Flags().BoolVar(&rpDefault, "default", false, "Make this the default policy")
	}

	retentionCmd.AddCommand(listRetentionCmd, createRetentionCmd, alterRetentionCmd, dropRetentionCmd)
	rootCmd.AddCommand(retentionCmd)
}
