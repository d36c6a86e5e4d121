package collection

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/btree"
)

// IndexBtree keeps rows ordered by one or more fields. A leading "-" on a
// field name reverses that field's order.
type IndexBtree struct {
	Btree   *btree.BTreeG[*RowOrdered]
	Options *IndexBTreeOptions
}

type IndexBTreeOptions struct {
	Fields []string `json:"fields"`
	Sparse bool     `json:"sparse"`
	Unique bool     `json:"unique"`
}

type RowOrdered struct {
	*Row
	Values []any
}

func NewIndexBTree(options *IndexBTreeOptions) *IndexBtree {

	index := btree.NewG(32, func(a, b *RowOrdered) bool {

		for i, valA := range a.Values {
			valB := b.Values[i]
			if reflect.DeepEqual(valA, valB) {
				continue
			}

			field := options.Fields[i]
			reverse := strings.HasPrefix(field, "-")

			less := lessValue(valA, valB)
			if reverse {
				return !less
			}
			return less
		}

		return false
	})

	return &IndexBtree{
		Btree:   index,
		Options: options,
	}
}

// lessValue orders two index field values. Mixed or unsupported types fall
// back to their JSON text so the tree stays totally ordered instead of
// panicking on dirty data.
func lessValue(a, b any) bool {
	switch valA := a.(type) {
	case string:
		if valB, ok := b.(string); ok {
			return valA < valB
		}
	case float64:
		if valB, ok := b.(float64); ok {
			return valA < valB
		}
	case bool:
		if valB, ok := b.(bool); ok {
			return !valA && valB
		}
	}
	textA, _ := json.Marshal(a)
	textB, _ := json.Marshal(b)
	return string(textA) < string(textB)
}

func (b *IndexBtree) values(r *Row) ([]any, error) {
	data := map[string]any{}
	json.Unmarshal(r.Payload, &data)

	values := []any{}
	for _, field := range b.Options.Fields {
		field = strings.TrimPrefix(field, "-")
		value, exists := data[field]
		if !exists {
			if b.Options.Sparse {
				return nil, nil
			}
			return nil, fmt.Errorf("field '%s' not defined", field)
		}
		values = append(values, value)
	}

	return values, nil
}

func (b *IndexBtree) AddRow(r *Row) error {
	values, err := b.values(r)
	if err != nil {
		return err
	}
	if values == nil {
		// Sparse row, not indexed
		return nil
	}

	if b.Options.Unique && b.Btree.Has(&RowOrdered{Values: values}) {
		errKey := ""
		for i, field := range b.Options.Fields {
			pair := fmt.Sprint(field, ":", values[i])
			if errKey != "" {
				errKey += "," + pair
			} else {
				errKey = pair
			}
		}
		return fmt.Errorf("key (%s) already exists", errKey)
	}

	b.Btree.ReplaceOrInsert(&RowOrdered{
		Row:    r,
		Values: values,
	})

	return nil
}

func (b *IndexBtree) RemoveRow(r *Row) error {
	values, err := b.values(r)
	if err != nil || values == nil {
		return err
	}

	b.Btree.Delete(&RowOrdered{
		Row:    r,
		Values: values,
	})

	return nil
}

type IndexBtreeTraverse struct {
	Reverse bool           `json:"reverse"`
	From    map[string]any `json:"from"`
	To      map[string]any `json:"to"`
}

func (b *IndexBtree) Traverse(optionsData []byte, f func(*Row) bool) {

	options := &IndexBtreeTraverse{}
	json.Unmarshal(optionsData, options)

	iterator := func(r *RowOrdered) bool {
		return f(r.Row)
	}

	hasFrom := len(options.From) > 0
	hasTo := len(options.To) > 0

	pivotFrom := &RowOrdered{}
	if hasFrom {
		for _, field := range b.Options.Fields {
			field = strings.TrimPrefix(field, "-")
			pivotFrom.Values = append(pivotFrom.Values, options.From[field])
		}
	}

	pivotTo := &RowOrdered{}
	if hasTo {
		for _, field := range b.Options.Fields {
			field = strings.TrimPrefix(field, "-")
			pivotTo.Values = append(pivotTo.Values, options.To[field])
		}
	}

	if !hasFrom && !hasTo {
		if options.Reverse {
			b.Btree.Descend(iterator)
		} else {
			b.Btree.Ascend(iterator)
		}
	} else if hasFrom && !hasTo {
		if options.Reverse {
			b.Btree.DescendGreaterThan(pivotFrom, iterator)
		} else {
			b.Btree.AscendGreaterOrEqual(pivotFrom, iterator)
		}
	} else if !hasFrom && hasTo {
		if options.Reverse {
			b.Btree.DescendLessOrEqual(pivotTo, iterator)
		} else {
			b.Btree.AscendLessThan(pivotTo, iterator)
		}
	} else {
		if options.Reverse {
			b.Btree.DescendRange(pivotTo, pivotFrom, iterator)
		} else {
			b.Btree.AscendRange(pivotFrom, pivotTo, iterator)
		}
	}
}

func (b *IndexBtree) GetKind() string {
	return "btree"
}

func (b *IndexBtree) GetOptions() any {
	return b.Options
}
