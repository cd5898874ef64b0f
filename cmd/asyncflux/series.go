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

var dropSeriesTags map[string]string

// seriesCmd represents the series command
var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Inspect and drop series",
}

// listSeriesCmd represents the series list command
var listSeriesCmd = &cobra.Command{
	Use:   "list",
	Short: "List the series of the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd, func(ctx context.Context, db *asyncflux.Database) error {
			series, err := db.GetSeries(ctx).Await(ctx)
			if err != nil {
				return err
			}
			return printYAML(cmd, series)
		})
	},
}

// dropSeriesCmd represents the series drop command
var dropSeriesCmd = &cobra.Command{
	Use:   "drop [measurement]",
	Short: "Drop series",
	Long: `Drop series of the database, optionally restricted to a measurement and to tag values.

Examples:
  asyncflux -d telegraf series drop cpu --tag host=server01
  asyncflux -d telegraf series drop --tag region=us-west`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var measurement string
		if len(args) == 1 {
			measurement = args[0]
		}
		return withDatabase(cmd, func(ctx context.Context, db *asyncflux.Database) error {
			_, err := db.DropSeries(ctx, measurement, dropSeriesTags).Await(ctx)
			return err
		})
	},
}

func setupSeriesCommands() {
	dropSeriesCmd.Flags().StringToStringVar(&dropSeriesTags, "tag", nil, "Only drop series with this tag value (key=value, repeatable)")

	seriesCmd.AddCommand(listSeriesCmd, dropSeriesCmd)
	rootCmd.AddCommand(seriesCmd)
}
