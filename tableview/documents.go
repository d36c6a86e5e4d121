package tableview

import "sort"

// DocumentColumns derives one accessor column per field present in a set of
// decoded JSON documents, in field name order, so generic documents can flow
// through the pipeline without hand-written column lists.
func DocumentColumns(documents []map[string]any) []Column[map[string]any] {

	names := map[string]bool{}
	for _, document := range documents {
		for name := range document {
			names[name] = true
		}
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	columns := make([]Column[map[string]any], 0, len(sorted))
	for _, name := range sorted {
		name := name
		columns = append(columns, Column[map[string]any]{
			Name:       name,
			Title:      name,
			Sortable:   true,
			Filterable: true,
			Accessor: func(document map[string]any) any {
				return document[name]
			},
		})
	}

	return columns
}

// DocumentID extracts the `id` field. Documents without a string id yield ""
// and make selection ambiguous, which is the documented duplicate-id risk.
func DocumentID(document map[string]any) string {
	id, _ := document["id"].(string)
	return id
}
