package store

import (
	"fmt"
	"reflect"
	"strings"
)

// Filter is a set of named query filters. Keys not recognized by the query
// being filtered are silently ignored, keeping the filter surface
// forward-compatible.
type Filter map[string]any

// BuildFilter composes SQL predicates from a filter set. columns maps a
// filter key to the column expressions it applies to (multiple expressions
// are OR-ed, used for free-text search across columns).
//
// Semantics per key:
//   - slice values become IN clauses
//   - keys containing "search" or "query" become substring LIKE matches
//   - keys named from/from_date and to/to_date become >= / <= range bounds
//   - everything else is an exact match
//
// Returns WHERE fragments and their bind arguments in matching order.
func BuildFilter(filters Filter, columns map[string][]string) (clauses []string, args []any) {
	for key, value := range filters {
		cols, ok := columns[key]
		if !ok || len(cols) == 0 || value == nil {
			continue
		}

		switch {
		case isSlice(value):
			items := sliceValues(value)
			if len(items) == 0 {
				continue
			}
			placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(items)), ", ")
			clauses = append(clauses, fmt.Sprintf("%s IN (%s)", cols[0], placeholders))
			args = append(args, items...)

		case strings.Contains(key, "search") || strings.Contains(key, "query"):
			pattern := "%" + fmt.Sprintf("%v", value) + "%"
			like := make([]string, len(cols))
			for i, col := range cols {
				like[i] = col + " LIKE ?"
				args = append(args, pattern)
			}
			clauses = append(clauses, "("+strings.Join(like, " OR ")+")")

		case key == "from" || key == "from_date":
			clauses = append(clauses, cols[0]+" >= ?")
			args = append(args, value)

		case key == "to" || key == "to_date":
			clauses = append(clauses, cols[0]+" <= ?")
			args = append(args, value)

		default:
			clauses = append(clauses, cols[0]+" = ?")
			args = append(args, value)
		}
	}
	return clauses, args
}

// ParseSort translates a sort value into an ORDER BY expression. The value
// is a field name with an optional '-' prefix for descending order. Fields not
// in the allowed map (sort field to column expression) fall back to the
// fallback column descending. idColumn is appended as a tie-break so equal
// sort keys still page deterministically.
func ParseSort(sort string, allowed map[string]string, fallback, idColumn string) string {
	direction := "ASC"
	field := strings.TrimSpace(sort)
	if strings.HasPrefix(field, "-") {
		direction = "DESC"
		field = field[1:]
	}

	column, ok := allowed[field]
	if !ok {
		column = fallback
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s, %s ASC", column, direction, idColumn)
}

func isSlice(v any) bool {
	kind := reflect.TypeOf(v).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// sliceValues flattens a slice value into bind arguments.
func sliceValues(v any) []any {
	rv := reflect.ValueOf(v)
	out := make([]any, 0, rv.Len())
	for i := range rv.Len() {
		out = append(out, rv.Index(i).Interface())
	}
	return out
}
