package collection

import (
	"encoding/json"
	"fmt"
)

// Index keeps a secondary access path over the rows. Implementations: "map"
// (unique key/value) and "btree" (ordered, multi-field).
type Index interface {
	AddRow(row *Row) error
	RemoveRow(row *Row) error
	Traverse(options []byte, f func(row *Row) bool)
	GetKind() string
	GetOptions() any
}

func NewIndex(kind string, options json.RawMessage) (Index, error) {
	switch kind {
	case "map":
		o := &IndexMapOptions{}
		json.Unmarshal(options, o)
		if o.Field == "" {
			return nil, fmt.Errorf("map index requires a field")
		}
		return NewIndexMap(o), nil
	case "btree":
		o := &IndexBTreeOptions{}
		json.Unmarshal(options, o)
		if len(o.Fields) == 0 {
			return nil, fmt.Errorf("btree index requires at least one field")
		}
		return NewIndexBTree(o), nil
	}
	return nil, fmt.Errorf("unknown index kind '%s', must be [btree|map]", kind)
}
