package tableview

// Engine owns one State over one row collection and recomputes the visible
// slice synchronously after every mutation. Rows are opaque: identity comes
// from the ID option and field access from column accessors, so any row type
// works, including decoded JSON documents.
//
// The engine never clamps Pagination.Page when a mutation shrinks the result
// set: an out of range page renders empty until the host navigates, and
// hosts can clamp with State().Pagination.TotalPages(). Duplicate ids in the
// row collection make selection ambiguous and are not defended against.
type Engine[T any] struct {
	rows     []T
	columns  []Column[T]
	id       func(T) string
	state    State
	visible  []T
	onChange func(State)
}

type Options[T any] struct {
	Columns []Column[T]

	// ID extracts the unique row identifier used by selection.
	ID func(T) string

	// Initial overrides the zero State, field by field where set.
	Initial *State

	// PageSizes is the option list offered by the host, informational only.
	PageSizes []int

	// OnChange is invoked after every mutation with the new State.
	OnChange func(State)
}

func New[T any](rows []T, options Options[T]) *Engine[T] {

	state := NewState()
	if options.Initial != nil {
		initial := *options.Initial
		if initial.Pagination.PageSize > 0 {
			state.Pagination.PageSize = initial.Pagination.PageSize
		}
		state.Pagination.Page = initial.Pagination.Page
		if initial.Sorting != nil {
			state.Sorting = initial.Sorting
		}
		if initial.Filters != nil {
			state.Filters = initial.Filters
		}
		if initial.Selection != nil {
			state.Selection = initial.Selection.clone()
		}
		state.Search = initial.Search
	}

	e := &Engine[T]{
		rows:     rows,
		columns:  options.Columns,
		id:       options.ID,
		state:    state,
		onChange: options.OnChange,
	}
	e.recompute()

	return e
}

func (e *Engine[T]) recompute() {
	e.visible, e.state.Pagination.Total = Compute(e.rows, e.columns, e.state)
}

func (e *Engine[T]) apply(state State) {
	e.state = state
	e.recompute()
	if e.onChange != nil {
		e.onChange(e.state)
	}
}

// Visible returns the current page slice.
func (e *Engine[T]) Visible() []T {
	return e.visible
}

func (e *Engine[T]) State() State {
	return e.state
}

func (e *Engine[T]) Columns() []Column[T] {
	return e.columns
}

// SetRows replaces the raw collection, keeping state (including selection)
// intact.
func (e *Engine[T]) SetRows(rows []T) {
	e.rows = rows
	e.apply(e.state)
}

func (e *Engine[T]) SetSearch(query string) {
	e.apply(SetSearch(e.state, query))
}

func (e *Engine[T]) SetFilters(filters []Filter) {
	e.apply(SetFilters(e.state, filters))
}

func (e *Engine[T]) ToggleSort(column string) {
	state := e.state
	state.Sorting = ToggleSort(state.Sorting, column)
	e.apply(state)
}

func (e *Engine[T]) GoToPage(page int) {
	e.apply(GoToPage(e.state, page))
}

func (e *Engine[T]) SetPageSize(size int) {
	e.apply(SetPageSize(e.state, size))
}

func (e *Engine[T]) ToggleRow(id string) {
	e.apply(ToggleRow(e.state, id))
}

func (e *Engine[T]) ToggleAllOnPage() {
	e.apply(ToggleAllOnPage(e.state, e.VisibleIDs()))
}

// AllOnPageSelected reports the header checkbox state for the current page.
func (e *Engine[T]) AllOnPageSelected() bool {
	return AllOnPageSelected(e.state.Selection, e.VisibleIDs())
}

func (e *Engine[T]) VisibleIDs() []string {
	if e.id == nil {
		return nil
	}
	ids := make([]string, 0, len(e.visible))
	for _, row := range e.visible {
		ids = append(ids, e.id(row))
	}
	return ids
}
