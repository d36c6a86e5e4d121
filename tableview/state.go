package tableview

// State drives the visible slice of a table: pagination, sorting, filters,
// selection and free-text search. It is a value object: transitions return a
// new State and never mutate the receiver, so the whole state machine can be
// exercised without any host view.
type State struct {
	Pagination Pagination `json:"pagination"`
	Sorting    []SortKey  `json:"sorting"`
	Filters    []Filter   `json:"filters"`
	Selection  Selection  `json:"selection"`
	Search     string     `json:"search"`
}

type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortKey order inside State.Sorting is significant: the first entry is the
// primary key, later entries break ties.
type SortKey struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

type Operator string

const (
	Equals      Operator = "equals"
	Contains    Operator = "contains"
	StartsWith  Operator = "startsWith"
	EndsWith    Operator = "endsWith"
	GreaterThan Operator = "gt"
	LessThan    Operator = "lt"
)

// Filter entries compose with logical AND.
type Filter struct {
	Column   string   `json:"column"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value"`
}

const DefaultPageSize = 10

func NewState() State {
	return State{
		Pagination: Pagination{PageSize: DefaultPageSize},
		Selection:  Selection{},
	}
}

// TotalPages is ceil(Total/PageSize). The engine never clamps Page against
// it; hosts computing "first"/"last" targets are expected to.
func (p Pagination) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// ToggleSort advances the cycle unsorted -> asc -> desc -> unsorted for one
// column. A new column is appended at the end, so it becomes the newest
// tie-breaker and existing priorities are preserved. All other entries keep
// their relative order.
func ToggleSort(sorting []SortKey, column string) []SortKey {
	next := make([]SortKey, 0, len(sorting)+1)
	found := false
	for _, key := range sorting {
		if key.Column != column {
			next = append(next, key)
			continue
		}
		found = true
		if key.Direction == Ascending {
			next = append(next, SortKey{Column: column, Direction: Descending})
		}
		// desc drops the entry entirely
	}
	if !found {
		next = append(next, SortKey{Column: column, Direction: Ascending})
	}
	return next
}

// GoToPage trusts the requested page, even out of range: rendering an out of
// range page yields an empty slice, it is not an error.
func GoToPage(state State, page int) State {
	state.Pagination.Page = page
	return state
}

// SetPageSize resets Page to 0 so the viewport cannot be stranded past the
// new page count.
func SetPageSize(state State, size int) State {
	state.Pagination.PageSize = size
	state.Pagination.Page = 0
	return state
}

func SetSearch(state State, query string) State {
	state.Search = query
	return state
}

func SetFilters(state State, filters []Filter) State {
	state.Filters = filters
	return state
}
