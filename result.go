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
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ResultSet stores the results of a query, one per statement.
type ResultSet struct {
	Results []*Result `json:"results"`
}

// Result returns the result of the i-th statement.
func (rs *ResultSet) Result(i int) (*Result, error) {
	if rs == nil || i < 0 || i >= len(rs.Results) {
		return nil, ErrNoResult
	}
	return rs.Results[i], nil
}

// Result stores the outcome of a single statement.
type Result struct {
	StatementID int    `json:"statement_id"`
	Series      []*Row `json:"series,omitempty"`
	// Err is the error reported for this statement, if any.
	Err string `json:"error,omitempty"`
}

// unnamedSeries is the name given to series the server sends without one,
// such as the single series answering SHOW SERIES.
const unnamedSeries = "results"

// Items lists every series of the result with the first column of its values.
// Series without a name are listed as "results".
func (r *Result) Items() []Item {
	items := make([]Item, 0, len(r.Series))
	for _, row := range r.Series {
		values := make([]string, 0, len(row.Values))
		for _, v := range row.Values {
			if len(v) == 0 {
				continue
			}
			values = append(values, formatValue(v[0]))
		}
		name := row.Name
		if name == "" {
			name = unnamedSeries
		}
		items = append(items, Item{
			Name:   name,
			Tags:   row.Tags,
			Values: values,
		})
	}
	return items
}

// Points flattens every series of the result into points.
func (r *Result) Points() []Point {
	var points []Point
	for _, row := range r.Series {
		points = append(points, row.Points()...)
	}
	return points
}

// Row is a single series of a statement result.
type Row struct {
	Name    string            `json:"name,omitempty"`
	Tags    map[string]string `json:"tags,omitempty"`
	Columns []string          `json:"columns"`
	Values  [][]any           `json:"values,omitempty"`
}

// Points zips the columns with every value row. Tags of the series are merged
// into each point; a column of the same name wins.
func (r *Row) Points() []Point {
	points := make([]Point, 0, len(r.Values))
	for _, vs := range r.Values {
		p := make(Point, len(r.Columns)+len(r.Tags))
		for k, v := range r.Tags {
			p[k] = v
		}
		for i, col := range r.Columns {
			if i < len(vs) {
				p[col] = vs[i]
			}
		}
		points = append(points, p)
	}
	return points
}

// Item is a series key together with its values.
type Item struct {
	Name   string
	Tags   map[string]string
	Values []string
}

// Point is a single result row keyed by column name.
type Point map[string]any

// String returns the named field as a string.
func (p Point) String(field string) (string, error) {
	switch v := p[field].(type) {
	case string:
		return v, nil
	default:
		return "", &FieldError{Field: field, Value: v}
	}
}

// Int returns the named field as an int. JSON numbers and integral floats are
// accepted.
func (p Point) Int(field string) (int, error) {
	switch v := p[field].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == math.Trunc(v) {
			return int(v), nil
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), nil
		}
	}
	return 0, &FieldError{Field: field, Value: p[field]}
}

// Bool returns the named field as a bool.
func (p Point) Bool(field string) (bool, error) {
	switch v := p[field].(type) {
	case bool:
		return v, nil
	default:
		return false, &FieldError{Field: field, Value: v}
	}
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
