package repository

import (
	"fmt"
	"sort"
	"strings"
)

// Conditions maps a column name to a filter value. The value shape picks the
// predicate: string -> ILIKE substring, Range -> BETWEEN, slice -> IN,
// anything else -> exact match. Values are always bound positionally, never
// concatenated into the SQL text.
type Conditions map[string]any

// Range is a two-ended filter rendered as BETWEEN $a AND $b.
type Range struct {
	From any
	To   any
}

// Build renders the conditions as a string of " AND <col> <op> $n" fragments
// plus the matching ordered bind arguments. alias, when non-empty, qualifies
// every column structurally (no textual rewriting of finished SQL). startIdx
// is the first placeholder number to use; the next free one is returned so
// callers can keep appending their own predicates.
func (c Conditions) Build(alias string, startIdx int) (string, []any, int) {
	if len(c) == 0 {
		return "", nil, startIdx
	}

	// Map iteration order is random; sort so the generated SQL is stable.
	cols := make([]string, 0, len(c))
	for col := range c {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	var sb strings.Builder
	args := make([]any, 0, len(c))
	idx := startIdx

	for _, col := range cols {
		name := col
		if alias != "" {
			name = alias + "." + col
		}
		switch v := c[col].(type) {
		case string:
			sb.WriteString(fmt.Sprintf(" AND %s ILIKE $%d", name, idx))
			args = append(args, "%"+v+"%")
			idx++
		case Range:
			sb.WriteString(fmt.Sprintf(" AND %s BETWEEN $%d AND $%d", name, idx, idx+1))
			args = append(args, v.From, v.To)
			idx += 2
		case []any:
			if len(v) == 0 {
				continue
			}
			placeholders := make([]string, len(v))
			for i, item := range v {
				placeholders[i] = fmt.Sprintf("$%d", idx)
				args = append(args, item)
				idx++
			}
			sb.WriteString(fmt.Sprintf(" AND %s IN (%s)", name, strings.Join(placeholders, ", ")))
		default:
			sb.WriteString(fmt.Sprintf(" AND %s = $%d", name, idx))
			args = append(args, v)
			idx++
		}
	}

	return sb.String(), args, idx
}

// Allow keeps only the keys present in allowed. Filter endpoints accept
// arbitrary JSON bodies, so everything else is dropped before it gets near
// the query builder. JSON has no Range literal: a two-element array is the
// wire form of a range filter and is promoted here, so [100, 500] renders as
// BETWEEN while longer arrays stay IN lists.
func (c Conditions) Allow(allowed []string) Conditions {
	out := Conditions{}
	for _, key := range allowed {
		v, ok := c[key]
		if !ok {
			continue
		}
		if arr, ok := v.([]any); ok && len(arr) == 2 {
			v = Range{From: arr[0], To: arr[1]}
		}
		out[key] = v
	}
	return out
}

// SafeSortField maps a requested sort key to an allow-listed column name.
// Unrecognized input maps to def: ORDER BY cannot be parameterized, so raw
// input never reaches the SQL text.
func SafeSortField(requested string, allowed map[string]string, def string) string {
	if col, ok := allowed[requested]; ok {
		return col
	}
	return def
}

// SortDirection maps a requested direction case-insensitively to ASC/DESC,
// defaulting to ASC.
func SortDirection(requested string) string {
	if strings.EqualFold(requested, "desc") {
		return "DESC"
	}
	return "ASC"
}
