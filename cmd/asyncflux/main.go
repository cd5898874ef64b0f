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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/viswind/asyncflux"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	configFile string
	endpoint   string
	database   string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "asyncflux",
	Short:         "Administer an InfluxDB database",
	Long:          "Inspect and drop series, manage retention policies and grant privileges on an InfluxDB database.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", os.Getenv("ASYNCFLUX_CONFIG"), "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", os.Getenv("ASYNCFLUX_ENDPOINT"), "InfluxDB endpoint, overrides the config file")
	rootCmd.PersistentFlags().StringVarP(&database, "database", "d", os.Getenv("ASYNCFLUX_DATABASE"), "Database to operate on")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests to stderr")

	setupSeriesCommands()
	setupRetentionCommands()
	setupPrivilegeCommands()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig merges the config file with the command line flags.
func loadConfig() (*asyncflux.Config, error) {
	config := &asyncflux.Config{}
	if configFile != "" {
		loaded, err := asyncflux.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
		config = loaded
	}
	if endpoint != "" {
		config.Endpoint = endpoint
	}
	if config.Endpoint == "" {
		config.Endpoint = "http://localhost:8086"
	}
	if u := os.Getenv("ASYNCFLUX_USERNAME"); u != "" {
		config.Username = u
		config.Password = os.Getenv("ASYNCFLUX_PASSWORD")
	}
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		config.Logger = logger
	}
	return config, nil
}

// withDatabase opens a client and runs fn against the selected database.
func withDatabase(cmd *cobra.Command, fn func(ctx context.Context, db *asyncflux.Database) error) error {
	if database == "" {
		return errors.New("no database selected, use --database")
	}
	config, err := loadConfig()
	if err != nil {
		return err
	}
	client := asyncflux.NewClient(config)
	defer client.Close()
	if config.Logger != nil {
		defer func() { _ = config.Logger.Sync() }()
	}
	return fn(cmd.Context(), client.Database(database))
}

// printYAML renders v on the command output.
func printYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
