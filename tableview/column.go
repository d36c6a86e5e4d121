package tableview

// Column describes how one field of T is accessed and presented. Columns are
// configuration, supplied once per table, never part of mutable state.
type Column[T any] struct {
	// Name identifies the column in sort keys and filters.
	Name string

	// Title is the header label, opaque to the pipeline.
	Title string

	// Accessor extracts the field value. Columns without an accessor never
	// participate in search.
	Accessor func(T) any

	// Render optionally formats the cell. The pipeline never calls it.
	Render func(T) string

	Sortable   bool
	Filterable bool

	// Width is a display hint in characters, 0 means auto.
	Width int
}

func columnByName[T any](columns []Column[T], name string) (Column[T], bool) {
	for _, column := range columns {
		if column.Name == name {
			return column, true
		}
	}
	return Column[T]{}, false
}
