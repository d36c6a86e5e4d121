package tableview

import (
	"testing"

	. "github.com/fulldump/biff"
)

type skillRow struct {
	ID    string
	Name  string
	Level float64
	Note  string
}

func skillColumns() []Column[skillRow] {
	return []Column[skillRow]{
		{Name: "name", Title: "Name", Sortable: true, Filterable: true,
			Accessor: func(r skillRow) any { return r.Name }},
		{Name: "level", Title: "Level", Sortable: true, Filterable: true,
			Accessor: func(r skillRow) any { return r.Level }},
		{Name: "actions", Title: ""}, // no accessor, never searched
	}
}

func skillRows() []skillRow {
	return []skillRow{
		{ID: "a", Name: "Zeta", Level: 90},
		{ID: "b", Name: "Alpha", Level: 90},
		{ID: "c", Name: "Beta", Level: 50},
	}
}

func visibleIDs(rows []skillRow) []string {
	ids := []string{}
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids
}

func TestMultiKeySort(t *testing.T) {
	// Setup
	state := NewState()
	state.Sorting = []SortKey{
		{Column: "level", Direction: Descending},
		{Column: "name", Direction: Ascending},
	}

	// Run
	visible, total := Compute(skillRows(), skillColumns(), state)

	// Check: level 90 group ordered by name asc, then level 50
	AssertEqual(visibleIDs(visible), []string{"b", "a", "c"})
	AssertEqual(total, 3)
}

func TestMultiKeyPrecedence(t *testing.T) {
	state := NewState()
	state.Sorting = []SortKey{{Column: "level", Direction: Descending}}
	state.Sorting = ToggleSort(state.Sorting, "name")

	visible, _ := Compute(skillRows(), skillColumns(), state)

	// name breaks the level tie but never overrides level ordering
	AssertEqual(visibleIDs(visible), []string{"b", "a", "c"})
}

func TestSortStability(t *testing.T) {
	rows := []skillRow{
		{ID: "1", Name: "Go", Level: 80},
		{ID: "2", Name: "Rust", Level: 80},
		{ID: "3", Name: "Zig", Level: 80},
	}
	state := NewState()
	state.Sorting = []SortKey{{Column: "level", Direction: Ascending}}

	visible, _ := Compute(rows, skillColumns(), state)

	// all levels equal: original relative order is preserved
	AssertEqual(visibleIDs(visible), []string{"1", "2", "3"})
}

func TestSortMissingValuesKeepOrder(t *testing.T) {
	columns := []Column[skillRow]{
		{Name: "note", Accessor: func(r skillRow) any {
			if r.Note == "" {
				return nil
			}
			return r.Note
		}},
	}
	rows := []skillRow{
		{ID: "1"},
		{ID: "2", Note: "x"},
		{ID: "3"},
	}
	state := NewState()
	state.Sorting = []SortKey{{Column: "note", Direction: Ascending}}

	visible, _ := Compute(rows, columns, state)

	// nil on either side short-circuits to "no preference"
	AssertEqual(visibleIDs(visible), []string{"1", "2", "3"})
}

func TestPagination(t *testing.T) {
	state := NewState()
	state.Pagination.PageSize = 2
	state.Pagination.Page = 1

	visible, total := Compute(skillRows(), skillColumns(), state)

	AssertEqual(visibleIDs(visible), []string{"c"})
	AssertEqual(total, 3)
}

func TestPaginationOutOfRange(t *testing.T) {
	state := NewState()
	state.Pagination.PageSize = 2
	state.Pagination.Page = 7

	visible, total := Compute(skillRows(), skillColumns(), state)

	AssertEqual(len(visible), 0)
	AssertEqual(total, 3)
}

func TestFilterGreaterThan(t *testing.T) {
	state := NewState()
	state.Filters = []Filter{{Column: "level", Operator: GreaterThan, Value: "60"}}

	visible, total := Compute(skillRows(), skillColumns(), state)

	AssertEqual(visibleIDs(visible), []string{"a", "b"})
	AssertEqual(total, 2)
}

func TestFilterLessThanNonNumericExcluded(t *testing.T) {
	state := NewState()
	state.Filters = []Filter{{Column: "name", Operator: LessThan, Value: 10}}

	visible, _ := Compute(skillRows(), skillColumns(), state)

	// "Zeta" does not coerce to a number, the predicate fails
	AssertEqual(len(visible), 0)
}

func TestFilterEqualsIsStrict(t *testing.T) {
	state := NewState()
	state.Filters = []Filter{{Column: "level", Operator: Equals, Value: "90"}}

	visible, _ := Compute(skillRows(), skillColumns(), state)
	AssertEqual(len(visible), 0) // no string/number coercion

	state.Filters = []Filter{{Column: "level", Operator: Equals, Value: 90}}
	visible, _ = Compute(skillRows(), skillColumns(), state)
	AssertEqual(visibleIDs(visible), []string{"a", "b"})
}

func TestFilterStringOperators(t *testing.T) {
	state := NewState()

	state.Filters = []Filter{{Column: "name", Operator: Contains, Value: "ET"}}
	visible, _ := Compute(skillRows(), skillColumns(), state)
	AssertEqual(visibleIDs(visible), []string{"a", "c"})

	state.Filters = []Filter{{Column: "name", Operator: StartsWith, Value: "al"}}
	visible, _ = Compute(skillRows(), skillColumns(), state)
	AssertEqual(visibleIDs(visible), []string{"b"})

	state.Filters = []Filter{{Column: "name", Operator: EndsWith, Value: "TA"}}
	visible, _ = Compute(skillRows(), skillColumns(), state)
	AssertEqual(visibleIDs(visible), []string{"a", "c"})
}

func TestFiltersComposeWithAnd(t *testing.T) {
	state := NewState()
	state.Filters = []Filter{
		{Column: "level", Operator: GreaterThan, Value: 60},
		{Column: "name", Operator: Contains, Value: "eta"},
	}

	visible, _ := Compute(skillRows(), skillColumns(), state)

	AssertEqual(visibleIDs(visible), []string{"a"})
}

func TestUnknownOperatorPasses(t *testing.T) {
	state := NewState()
	state.Filters = []Filter{{Column: "name", Operator: "between", Value: "x"}}

	visible, total := Compute(skillRows(), skillColumns(), state)

	AssertEqual(total, 3)
	AssertEqual(len(visible), 3)
}

func TestFilterUnknownColumn(t *testing.T) {
	state := NewState()
	state.Filters = []Filter{{Column: "nope", Operator: GreaterThan, Value: 1}}

	visible, _ := Compute(skillRows(), skillColumns(), state)

	// missing field fails the numeric predicate, nothing throws
	AssertEqual(len(visible), 0)
}

func TestSearchCaseInsensitive(t *testing.T) {
	state := NewState()
	state.Search = "alph"

	visible, total := Compute(skillRows(), skillColumns(), state)

	AssertEqual(visibleIDs(visible), []string{"b"})
	AssertEqual(total, 1)
}

func TestSearchMatchesNumericCells(t *testing.T) {
	state := NewState()
	state.Search = "50"

	visible, _ := Compute(skillRows(), skillColumns(), state)

	AssertEqual(visibleIDs(visible), []string{"c"})
}

func TestComputeIsIdempotent(t *testing.T) {
	state := NewState()
	state.Search = "a"
	state.Sorting = []SortKey{{Column: "name", Direction: Descending}}
	state.Pagination.PageSize = 2
	rows := skillRows()

	first, totalFirst := Compute(rows, skillColumns(), state)
	second, totalSecond := Compute(rows, skillColumns(), state)

	AssertEqual(visibleIDs(first), visibleIDs(second))
	AssertEqual(totalFirst, totalSecond)
	// and the input order was not disturbed by sorting
	AssertEqual(visibleIDs(rows), []string{"a", "b", "c"})
}

func TestToggleSortCycle(t *testing.T) {
	sorting := []SortKey{}

	sorting = ToggleSort(sorting, "name")
	AssertEqual(sorting, []SortKey{{Column: "name", Direction: Ascending}})

	sorting = ToggleSort(sorting, "name")
	AssertEqual(sorting, []SortKey{{Column: "name", Direction: Descending}})

	sorting = ToggleSort(sorting, "name")
	AssertEqual(len(sorting), 0)
}

func TestToggleSortKeepsOtherEntries(t *testing.T) {
	sorting := []SortKey{
		{Column: "level", Direction: Ascending},
		{Column: "name", Direction: Ascending},
	}

	// asc -> desc in place, name untouched
	sorting = ToggleSort(sorting, "level")
	AssertEqual(sorting, []SortKey{
		{Column: "level", Direction: Descending},
		{Column: "name", Direction: Ascending},
	})

	// desc -> removed, name shifts up keeping its direction
	sorting = ToggleSort(sorting, "level")
	AssertEqual(sorting, []SortKey{{Column: "name", Direction: Ascending}})

	// toggling again re-adds level at the end, as the newest tie-breaker
	sorting = ToggleSort(sorting, "level")
	AssertEqual(sorting, []SortKey{
		{Column: "name", Direction: Ascending},
		{Column: "level", Direction: Ascending},
	})
}

func TestToggleSortAppendsAsTieBreaker(t *testing.T) {
	sorting := []SortKey{{Column: "level", Direction: Descending}}

	sorting = ToggleSort(sorting, "name")

	AssertEqual(sorting, []SortKey{
		{Column: "level", Direction: Descending},
		{Column: "name", Direction: Ascending},
	})
}

func TestTotalPages(t *testing.T) {
	AssertEqual(Pagination{PageSize: 2, Total: 3}.TotalPages(), 2)
	AssertEqual(Pagination{PageSize: 2, Total: 4}.TotalPages(), 2)
	AssertEqual(Pagination{PageSize: 10, Total: 0}.TotalPages(), 0)
	AssertEqual(Pagination{PageSize: 0, Total: 5}.TotalPages(), 0)
}
