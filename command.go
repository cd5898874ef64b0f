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
	"fmt"
	"sort"
	"strings"

	"github.com/influxdata/influxql"
)

// command is an InfluxQL statement assembled from clauses in a fixed order.
type command struct {
	clauses []string
}

func newCommand(head string, args ...any) *command {
	return (&command{}).add(head, args...)
}

func (c *command) add(format string, args ...any) *command {
	if len(args) == 0 {
		c.clauses = append(c.clauses, format)
	} else {
		c.clauses = append(c.clauses, fmt.Sprintf(format, args...))
	}
	return c
}

func (c *command) addIf(cond bool, format string, args ...any) *command {
	if cond {
		c.add(format, args...)
	}
	return c
}

func (c *command) String() string {
	return strings.Join(c.clauses, " ")
}

func showSeriesCommand() string {
	return "SHOW SERIES"
}

func dropSeriesCommand(measurement string, tags map[string]string) string {
	return newCommand("DROP SERIES").
		addIf(measurement != "", "FROM %s", quote(measurement, '"')).
		addIf(len(tags) > 0, "WHERE %s", tagPredicates(tags)).
		String()
}

// tagPredicates renders tags as equality predicates ordered by key.
func tagPredicates(tags map[string]string) string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	preds := make([]string, 0, len(keys))
	for _, k := range keys {
		preds = append(preds, fmt.Sprintf("%s=%s", influxql.QuoteIdent(k), quote(tags[k], '\'')))
	}
	return strings.Join(preds, " and ")
}

func showRetentionPoliciesCommand(database string) string {
	return newCommand("SHOW RETENTION POLICIES ON %s", influxql.QuoteIdent(database)).String()
}

func createRetentionPolicyCommand(database, name, duration string, replication int, isDefault bool) string {
	return newCommand("CREATE RETENTION POLICY %s ON %s", influxql.QuoteIdent(name), influxql.QuoteIdent(database)).
		add("DURATION %s", duration).
		add("REPLICATION %d", replication).
		addIf(isDefault, "DEFAULT").
		String()
}

func alterRetentionPolicyCommand(database, name string, opts AlterOptions) string {
	return newCommand("ALTER RETENTION POLICY %s ON %s", influxql.QuoteIdent(name), influxql.QuoteIdent(database)).
		addIf(opts.Duration != "", "DURATION %s", opts.Duration).
		addIf(opts.Replication != 0, "REPLICATION %d", opts.Replication).
		addIf(opts.Default, "DEFAULT").
		String()
}

func dropRetentionPolicyCommand(database, name string) string {
	return newCommand("DROP RETENTION POLICY %s ON %s", influxql.QuoteIdent(name), influxql.QuoteIdent(database)).String()
}

func grantCommand(privilege Privilege, username, database string) string {
	return newCommand("GRANT %s ON %s TO %s", privilege, influxql.QuoteIdent(database), influxql.QuoteIdent(username)).String()
}

func revokeCommand(privilege Privilege, username, database string) string {
	return newCommand("REVOKE %s ON %s FROM %s", privilege, influxql.QuoteIdent(database), influxql.QuoteIdent(username)).String()
}

func createUserCommand(username, password string, admin bool) string {
	return newCommand("CREATE USER %s WITH PASSWORD %s", influxql.QuoteIdent(username), quote(password, '\'')).
		addIf(admin, "WITH ALL PRIVILEGES").
		String()
}

// quote wraps s in r, escaping backslashes, newlines and r itself the way the
// InfluxQL scanner expects.
func quote(s string, r rune) string {
	var b bytes.Buffer
	b.WriteRune(r)
	for _, c := range s {
		switch c {
		case '\n':
			b.WriteString("\\n")
		case '\\':
			b.WriteString("\\\\")
		case r:
			b.WriteRune('\\')
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteRune(r)
	return b.String()
}

// isReadOnly reports whether every statement of q can be sent with GET.
func isReadOnly(q string) bool {
	n := 0
	for _, stmt := range strings.Split(q, ";") {
		fields := strings.Fields(strings.ToUpper(stmt))
		if len(fields) == 0 {
			continue
		}
		n++
		switch fields[0] {
		case "SELECT":
			for _, f := range fields {
				if f == "INTO" {
					return false
				}
			}
		case "SHOW":
		default:
			return false
		}
	}
	return n > 0
}
