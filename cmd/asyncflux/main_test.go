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
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, body string, args ...string) (string, []string) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(data))
		q := r.URL.Query().Get("q")
		if q == "" {
			q = form.Get("q")
		}
		queries = append(queries, q)
		_, _ = io.WriteString(w, body)
	}))
	defer srv.Close()

	// flags keep their values between runs
	database, endpoint, configFile, rpNamesOnly, dropSeriesTags = "", "", "", false, nil
	rpDuration, rpReplication, rpDefault = "", 1, false
	for _, c := range []*cobra.Command{createRetentionCmd, alterRetentionCmd} {
		for _, name := range []string{"duration", "replication", "default"} {
			c.Flags().Lookup(name).Changed = false
		}
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--endpoint", srv.URL}, args...))
	require.NoError(t, rootCmd.Execute())
	return out.String(), queries
}

func TestListRetentionPolicies(t *testing.T) {
	body := `{"results":[{"statement_id":0,"series":[{"columns":["name","duration","shardGroupDuration","replicaN","default"],"values":[["autogen","0s","168h0m0s",1,true]]}]}]}`

	out, queries := runCLI(t, body, "-d", "mydb", "rp", "list")
	require.Equal(t, []string{"SHOW RETENTION POLICIES ON mydb"}, queries)
	require.Equal(t, "- name: autogen\n  duration: 0s\n  replication: 1\n  default: true\n", out)

	out, _ = runCLI(t, body, "-d", "mydb", "rp", "list", "--names")
	require.Equal(t, "- autogen\n", out)
}

func TestDropSeriesCommand(t *testing.T) {
	_, queries := runCLI(t, `{"results":[{"statement_id":0}]}`,
		"-d", "mydb", "series", "drop", "cpu", "--tag", "host=a", "--tag", "region=us")
	require.Equal(t, []string{`DROP SERIES FROM "cpu" WHERE host='a' and region='us'`}, queries)
}

func TestGrantCommand(t *testing.T) {
	_, queries := runCLI(t, `{"results":[{"statement_id":0}]}`, "-d", "mydb", "grant", "write", "bob")
	require.Equal(t, []string{"GRANT WRITE ON mydb TO bob"}, queries)
}

func TestRetentionPolicyCommands(t *testing.T) {
	ok := `{"results":[{"statement_id":0}]}`

	out, queries := runCLI(t, ok, "-d", "mydb", "rp", "create", "rp1", "--duration", "30d", "--replication", "2", "--default")
	require.Equal(t, []string{"CREATE RETENTION POLICY rp1 ON mydb DURATION 30d REPLICATION 2 DEFAULT"}, queries)
	require.Equal(t, "name: rp1\nduration: 30d\nreplication: 2\ndefault: true\n", out)

	// only the flags given to this run apply
	_, queries = runCLI(t, ok, "-d", "mydb", "rp", "alter", "rp1", "--duration", "7d")
	require.Equal(t, []string{"ALTER RETENTION POLICY rp1 ON mydb DURATION 7d"}, queries)

	_, queries = runCLI(t, ok, "-d", "mydb", "rp", "alter", "rp1", "--replication", "3", "--default")
	require.Equal(t, []string{"ALTER RETENTION POLICY rp1 ON mydb REPLICATION 3 DEFAULT"}, queries)

	_, queries = runCLI(t, ok, "-d", "mydb", "rp", "drop", "rp1")
	require.Equal(t, []string{"DROP RETENTION POLICY rp1 ON mydb"}, queries)
}

func TestCreateRetentionPolicyRequiresDuration(t *testing.T) {
	database, endpoint = "", ""
	rpDuration = ""
	rootCmd.SetArgs([]string{"--endpoint", "http://127.0.0.1:0", "-d", "mydb", "rp", "create", "rp1"})
	require.Error(t, rootCmd.Execute())
}

func TestRevokeCommand(t *testing.T) {
	_, queries := runCLI(t, `{"results":[{"statement_id":0}]}`, "-d", "mydb", "revoke", "read", "bob")
	require.Equal(t, []string{"REVOKE READ ON mydb FROM bob"}, queries)
}

func TestDropDatabaseCommand(t *testing.T) {
	_, queries := runCLI(t, `{"results":[{"statement_id":0}]}`, "-d", "mydb", "drop-database")
	require.Equal(t, []string{"DROP DATABASE mydb"}, queries)
}

func TestCommandRequiresDatabase(t *testing.T) {
	database, endpoint = "", ""
	rootCmd.SetArgs([]string{"rp", "list"})
	require.Error(t, rootCmd.Execute())
}
