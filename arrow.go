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
	"errors"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// ToArrowRecord converts the series into an Arrow record batch.
//
// Column types are inferred from the values: integral JSON numbers become
// int64, other numbers float64, booleans bool, and everything else string.
// A column whose values disagree on type falls back to string. The caller
// owns the returned record and must release it.
func (r *Row) ToArrowRecord(mem memory.Allocator) (arrow.Record, error) {
	if len(r.Columns) == 0 {
		return nil, errors.New("cannot convert a series without columns")
	}
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	fields := make([]arrow.Field, len(r.Columns))
	for i, col := range r.Columns {
		fields[i] = arrow.Field{Name: col, Type: r.inferType(i), Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for _, vs := range r.Values {
		for i := range r.Columns {
			var v any
			if i < len(vs) {
				v = vs[i]
			}
			appendArrowValue(b.Field(i), v)
		}
	}
	return b.NewRecord(), nil
}

func (r *Row) inferType(col int) arrow.DataType {
	var typ arrow.DataType
	for _, vs := range r.Values {
		if col >= len(vs) || vs[col] == nil {
			continue
		}
		t := arrowTypeOf(vs[col])
		switch {
		case typ == nil:
			typ = t
		case arrow.TypeEqual(typ, arrow.PrimitiveTypes.Int64) && arrow.TypeEqual(t, arrow.PrimitiveTypes.Float64):
			typ = t
		case arrow.TypeEqual(typ, arrow.PrimitiveTypes.Float64) && arrow.TypeEqual(t, arrow.PrimitiveTypes.Int64):
		case !arrow.TypeEqual(typ, t):
			return arrow.BinaryTypes.String
		}
	}
	if typ == nil {
		return arrow.BinaryTypes.String
	}
	return typ
}

func arrowTypeOf(v any) arrow.DataType {
	switch v := v.(type) {
	case bool:
		return arrow.FixedWidthTypes.Boolean
	case int, int64:
		return arrow.PrimitiveTypes.Int64
	case float64:
		return arrow.PrimitiveTypes.Float64
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return arrow.PrimitiveTypes.Int64
		}
		return arrow.PrimitiveTypes.Float64
	default:
		return arrow.BinaryTypes.String
	}
}

func appendArrowValue(b array.Builder, v any) {
	if v == nil {
		b.AppendNull()
		return
	}
	switch b := b.(type) {
	case *array.Int64Builder:
		switch v := v.(type) {
		case int:
			b.Append(int64(v))
		case int64:
			b.Append(v)
		case json.Number:
			n, _ := v.Int64()
			b.Append(n)
		default:
			b.AppendNull()
		}
	case *array.Float64Builder:
		switch v := v.(type) {
		case int:
			b.Append(float64(v))
		case int64:
			b.Append(float64(v))
		case float64:
			b.Append(v)
		case json.Number:
			f, _ := v.Float64()
			b.Append(f)
		default:
			b.AppendNull()
		}
	case *array.BooleanBuilder:
		if v, ok := v.(bool); ok {
			b.Append(v)
		} else {
			b.AppendNull()
		}
	case *array.StringBuilder:
		b.Append(formatValue(v))
	default:
		b.AppendNull()
	}
}
