package tableview

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Compute runs the pipeline raw rows -> search -> filter -> sort -> paginate
// and returns the visible slice plus the row count after search and filters,
// before slicing. It is a pure function of its inputs: rows and state are
// never mutated, and no stage errors on malformed input (bad operands exclude
// rows, missing fields compare equal, out of range pages yield empty slices).
func Compute[T any](rows []T, columns []Column[T], state State) (visible []T, total int) {

	processed := applySearch(rows, columns, state.Search)
	processed = applyFilters(processed, columns, state.Filters)
	processed = applySort(processed, columns, state.Sorting)

	total = len(processed)

	return paginate(processed, state.Pagination), total
}

func applySearch[T any](rows []T, columns []Column[T], query string) []T {
	if query == "" {
		return rows
	}

	needle := strings.ToLower(query)

	kept := []T{}
	for _, row := range rows {
		for _, column := range columns {
			if column.Accessor == nil {
				continue
			}
			haystack := strings.ToLower(coerceString(column.Accessor(row)))
			if strings.Contains(haystack, needle) {
				kept = append(kept, row)
				break
			}
		}
	}

	return kept
}

func applyFilters[T any](rows []T, columns []Column[T], filters []Filter) []T {
	if len(filters) == 0 {
		return rows
	}

	kept := []T{}
	for _, row := range rows {
		pass := true
		for _, filter := range filters {
			if !matchFilter(row, columns, filter) {
				pass = false
				break
			}
		}
		if pass {
			kept = append(kept, row)
		}
	}

	return kept
}

func matchFilter[T any](row T, columns []Column[T], filter Filter) bool {

	var value any
	column, found := columnByName(columns, filter.Column)
	if found && column.Accessor != nil {
		value = column.Accessor(row)
	}

	switch filter.Operator {
	case Equals:
		return strictEqual(value, filter.Value)
	case Contains:
		return strings.Contains(lowered(value), lowered(filter.Value))
	case StartsWith:
		return strings.HasPrefix(lowered(value), lowered(filter.Value))
	case EndsWith:
		return strings.HasSuffix(lowered(value), lowered(filter.Value))
	case GreaterThan:
		a, okA := coerceNumber(value)
		b, okB := coerceNumber(filter.Value)
		return okA && okB && a > b
	case LessThan:
		a, okA := coerceNumber(value)
		b, okB := coerceNumber(filter.Value)
		return okA && okB && a < b
	}

	// Unknown operator is a no-op, the row passes.
	return true
}

func applySort[T any](rows []T, columns []Column[T], sorting []SortKey) []T {
	if len(sorting) == 0 {
		return rows
	}

	sorted := make([]T, len(rows))
	copy(sorted, rows)

	// SliceStable keeps the original relative order of rows whose active
	// keys all compare equal.
	sort.SliceStable(sorted, func(i, j int) bool {
		for _, key := range sorting {
			column, found := columnByName(columns, key.Column)
			if !found || column.Accessor == nil {
				continue
			}
			c := compareValues(column.Accessor(sorted[i]), column.Accessor(sorted[j]))
			if c == 0 {
				continue
			}
			if key.Direction == Descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	return sorted
}

func paginate[T any](rows []T, p Pagination) []T {
	if p.PageSize <= 0 {
		return []T{}
	}

	from := p.Page * p.PageSize
	if p.Page < 0 || from >= len(rows) {
		return []T{}
	}

	to := from + p.PageSize
	if to > len(rows) {
		to = len(rows)
	}

	return rows[from:to]
}

// compareValues orders two field values for one sort key. A nil on either
// side means "no preference" (0), so rows with missing fields keep their
// relative pre-sort order for that key.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		return 0
	}

	numA, okA := asNumber(a)
	numB, okB := asNumber(b)
	if okA && okB {
		switch {
		case numA < numB:
			return -1
		case numA > numB:
			return 1
		}
		return 0
	}

	if boolA, ok := a.(bool); ok {
		if boolB, ok := b.(bool); ok {
			switch {
			case !boolA && boolB:
				return -1
			case boolA && !boolB:
				return 1
			}
			return 0
		}
	}

	return strings.Compare(coerceString(a), coerceString(b))
}

func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}

	// Numeric widths are normalized (a JSON 90 and an int 90 are the same
	// value), anything else must match in type and value.
	numA, okA := asNumber(a)
	numB, okB := asNumber(b)
	if okA != okB {
		return false
	}
	if okA {
		return numA == numB
	}

	return fmt.Sprintf("%T", a) == fmt.Sprintf("%T", b) && coerceString(a) == coerceString(b)
}

func coerceString(v any) string {
	if v == nil {
		return ""
	}
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	}
	return fmt.Sprint(v)
}

func lowered(v any) string {
	return strings.ToLower(coerceString(v))
}

// asNumber accepts native numeric types only.
func asNumber(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int8:
		return float64(value), true
	case int16:
		return float64(value), true
	case int32:
		return float64(value), true
	case int64:
		return float64(value), true
	case uint:
		return float64(value), true
	case uint8:
		return float64(value), true
	case uint16:
		return float64(value), true
	case uint32:
		return float64(value), true
	case uint64:
		return float64(value), true
	}
	return 0, false
}

// coerceNumber additionally accepts numeric strings, so a filter typed into
// a text input ("60") still compares against numeric cells.
func coerceNumber(v any) (float64, bool) {
	if n, ok := asNumber(v); ok {
		return n, true
	}
	if s, ok := v.(string); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil {
			return n, true
		}
	}
	return 0, false
}
