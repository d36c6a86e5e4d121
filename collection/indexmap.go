package collection

import (
	"encoding/json"
	"fmt"
	"sync"
)

// IndexMap is a unique key/value index. Values can be scalar strings or
// arrays of strings (multikey).
type IndexMap struct {
	Entries map[string]*Row
	RWmutex *sync.RWMutex
	Options *IndexMapOptions
}

type IndexMapOptions struct {
	Field  string `json:"field"`
	Sparse bool   `json:"sparse"`
}

func NewIndexMap(options *IndexMapOptions) *IndexMap {
	return &IndexMap{
		Entries: map[string]*Row{},
		RWmutex: &sync.RWMutex{},
		Options: options,
	}
}

func (i *IndexMap) AddRow(row *Row) error {

	item := map[string]any{}
	err := json.Unmarshal(row.Payload, &item)
	if err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	field := i.Options.Field
	itemValue, itemExists := item[field]
	if !itemExists {
		if i.Options.Sparse {
			// Do not index
			return nil
		}
		return fmt.Errorf("field `%s` is indexed and mandatory", field)
	}

	mutex := i.RWmutex
	entries := i.Entries

	switch value := itemValue.(type) {
	case string:
		mutex.RLock()
		_, exists := entries[value]
		mutex.RUnlock()
		if exists {
			return fmt.Errorf("index conflict: field '%s' with value '%s'", field, value)
		}

		mutex.Lock()
		entries[value] = row
		mutex.Unlock()

	case []any:
		for _, v := range value {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("field '%s' must contain only strings", field)
			}
			if _, exists := entries[s]; exists {
				return fmt.Errorf("index conflict: field '%s' with value '%s'", field, s)
			}
		}
		for _, v := range value {
			entries[v.(string)] = row
		}
	default:
		return fmt.Errorf("type not supported")
	}

	return nil
}

func (i *IndexMap) RemoveRow(row *Row) error {

	item := map[string]any{}
	err := json.Unmarshal(row.Payload, &item)
	if err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	field := i.Options.Field
	entries := i.Entries

	itemValue, itemExists := item[field]
	if !itemExists {
		// Was not indexed
		return nil
	}

	i.RWmutex.Lock()
	defer i.RWmutex.Unlock()

	switch value := itemValue.(type) {
	case string:
		delete(entries, value)
	case []any:
		for _, v := range value {
			s, ok := v.(string)
			if !ok {
				continue
			}
			delete(entries, s)
		}
	default:
		return fmt.Errorf("type not supported")
	}

	return nil
}

type IndexMapTraverse struct {
	Value string `json:"value"`
}

func (i *IndexMap) Traverse(optionsData []byte, f func(row *Row) bool) {
	options := &IndexMapTraverse{}
	json.Unmarshal(optionsData, options)

	i.RWmutex.RLock()
	row, ok := i.Entries[options.Value]
	i.RWmutex.RUnlock()
	if !ok {
		return
	}

	f(row)
}

func (i *IndexMap) GetKind() string {
	return "map"
}

func (i *IndexMap) GetOptions() any {
	return i.Options
}
