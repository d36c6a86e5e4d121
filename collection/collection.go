package collection

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/google/uuid"
)

// Collection is a durable in-memory set of JSON documents backed by an
// append-only command log. Every document carries a unique string `id`: one
// is generated on insert when the caller does not provide it. Documents are
// addressed by id, both in the public API and in the persisted remove/patch
// commands, so the log survives in-memory reordering.
type Collection struct {
	filename  string // Just informative...
	file      *os.File
	Rows      []*Row
	rowsMutex *sync.Mutex
	byID      map[string]*Row
	Indexes   map[string]Index
	Defaults  map[string]any
}

type Row struct {
	I          int // position in Rows
	ID         string
	Payload    json.RawMessage
	PatchMutex sync.Mutex
}

func OpenCollection(filename string) (*Collection, error) {

	f, err := os.OpenFile(filename, os.O_RDONLY|os.O_CREATE, 0666)
	if err != nil {
		return nil, fmt.Errorf("open file for read: %w", err)
	}
	defer f.Close()

	collection := &Collection{
		filename:  filename,
		Rows:      []*Row{},
		rowsMutex: &sync.Mutex{},
		byID:      map[string]*Row{},
		Indexes:   map[string]Index{},
	}

	j := json.NewDecoder(f)
	for {
		command := &Command{}
		err := j.Decode(&command)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}

		err = collection.replay(command)
		if err != nil {
			return nil, err
		}
	}

	// Open file for append only
	collection.file, err = os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("open file for write: %w", err)
	}

	return collection, nil
}

func (c *Collection) replay(command *Command) error {

	switch command.Name {
	case "insert":
		_, err := c.addRow(command.Payload)
		if err != nil {
			return err
		}
	case "remove":
		params := struct {
			ID string `json:"id"`
		}{}
		json.Unmarshal(command.Payload, &params)
		row, exists := c.byID[params.ID]
		if !exists {
			fmt.Printf("WARNING: remove '%s': not found\n", params.ID)
			return nil
		}
		err := c.removeByRow(row, false)
		if err != nil {
			fmt.Printf("WARNING: remove '%s': %s\n", params.ID, err.Error())
		}
	case "patch":
		params := struct {
			ID   string         `json:"id"`
			Diff map[string]any `json:"diff"`
		}{}
		json.Unmarshal(command.Payload, &params)
		row, exists := c.byID[params.ID]
		if !exists {
			fmt.Printf("WARNING: patch '%s': not found\n", params.ID)
			return nil
		}
		err := c.patchByRow(row, params.Diff, false)
		if err != nil {
			fmt.Printf("WARNING: patch '%s': %s\n", params.ID, err.Error())
		}
	case "index":
		params := &CreateIndexCommand{}
		json.Unmarshal(command.Payload, params)
		err := c.createIndex(params, false)
		if err != nil {
			fmt.Printf("WARNING: create index '%s': %s\n", params.Name, err.Error())
		}
	case "dropIndex":
		params := struct {
			Name string `json:"name"`
		}{}
		json.Unmarshal(command.Payload, &params)
		delete(c.Indexes, params.Name)
	case "defaults":
		defaults := map[string]any{}
		json.Unmarshal(command.Payload, &defaults)
		c.setDefaults(defaults, false)
	}

	return nil
}

func (c *Collection) persist(name string, payload any) error {
	if c.file == nil {
		return fmt.Errorf("collection is closed")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("json encode payload: %w", err)
	}

	command := &Command{
		Name:      name,
		Uuid:      uuid.New().String(),
		Timestamp: time.Now().UnixNano(),
		StartByte: 0,
		Payload:   data,
	}

	err = json.NewEncoder(c.file).Encode(command)
	if err != nil {
		return fmt.Errorf("json encode command: %w", err)
	}

	return nil
}

func (c *Collection) addRow(payload json.RawMessage) (*Row, error) {

	id, err := documentID(payload)
	if err != nil {
		return nil, err
	}

	row := &Row{
		ID:      id,
		Payload: payload,
	}

	c.rowsMutex.Lock()
	defer c.rowsMutex.Unlock()

	if _, exists := c.byID[id]; exists {
		return nil, fmt.Errorf("id conflict: '%s' already exists", id)
	}

	err = indexInsert(c.Indexes, row)
	if err != nil {
		return nil, err
	}

	row.I = len(c.Rows)
	c.Rows = append(c.Rows, row)
	c.byID[id] = row

	return row, nil
}

func documentID(payload json.RawMessage) (string, error) {
	item := map[string]any{}
	err := json.Unmarshal(payload, &item)
	if err != nil {
		return "", fmt.Errorf("unmarshal: %w", err)
	}

	id, ok := item["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("document field 'id' must be a non-empty string")
	}

	return id, nil
}

// Insert adds one document. Defaults are applied to missing fields first
// ("uuid()" and "unixnano()" expand, anything else is a literal), and an
// `id` is generated when still absent.
func (c *Collection) Insert(item map[string]any) (*Row, error) {

	for k, v := range c.Defaults {
		if item[k] != nil {
			continue
		}
		switch v {
		case "uuid()":
			item[k] = uuid.NewString()
		case "unixnano()":
			item[k] = time.Now().UnixNano()
		default:
			item[k] = v
		}
	}

	if _, ok := item["id"].(string); !ok {
		item["id"] = uuid.NewString()
	}

	payload, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("json encode payload: %w", err)
	}

	row, err := c.addRow(payload)
	if err != nil {
		return nil, err
	}

	err = c.persist("insert", json.RawMessage(payload))
	if err != nil {
		return nil, err
	}

	return row, nil
}

func (c *Collection) FindByID(id string) (*Row, bool) {
	c.rowsMutex.Lock()
	row, exists := c.byID[id]
	c.rowsMutex.Unlock()
	return row, exists
}

func (c *Collection) Traverse(f func(row *Row)) {
	for _, row := range c.Rows {
		f(row)
	}
}

// Documents materializes the whole collection as decoded documents, in row
// order. Undecodable payloads are skipped.
func (c *Collection) Documents() []map[string]any {
	documents := make([]map[string]any, 0, len(c.Rows))
	for _, row := range c.Rows {
		item := map[string]any{}
		err := json.Unmarshal(row.Payload, &item)
		if err != nil {
			continue
		}
		documents = append(documents, item)
	}
	return documents
}

func (c *Collection) Remove(row *Row) error {
	return c.removeByRow(row, true)
}

func (c *Collection) removeByRow(row *Row, persist bool) error {

	c.rowsMutex.Lock()
	i := row.I
	if len(c.Rows) <= i || c.Rows[i] != row {
		c.rowsMutex.Unlock()
		return fmt.Errorf("row '%s' does not exist", row.ID)
	}

	err := indexRemove(c.Indexes, row)
	if err != nil {
		c.rowsMutex.Unlock()
		return fmt.Errorf("could not free index: %w", err)
	}

	last := len(c.Rows) - 1
	c.Rows[i] = c.Rows[last]
	c.Rows[i].I = i
	c.Rows = c.Rows[:last]
	delete(c.byID, row.ID)
	c.rowsMutex.Unlock()

	if !persist {
		return nil
	}

	return c.persist("remove", map[string]any{"id": row.ID})
}

func (c *Collection) Patch(row *Row, patch any) error {
	return c.patchByRow(row, patch, true)
}

func (c *Collection) patchByRow(row *Row, patch any, persist bool) error {

	patchBytes, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("marshal patch: %w", err)
	}

	newPayload, err := jsonpatch.MergePatch(row.Payload, patchBytes)
	if err != nil {
		return fmt.Errorf("cannot apply patch: %w", err)
	}

	newID, err := documentID(newPayload)
	if err != nil {
		return err
	}
	if newID != row.ID {
		return fmt.Errorf("field 'id' is immutable")
	}

	diff, err := jsonpatch.CreateMergePatch(row.Payload, newPayload)
	if err != nil {
		return fmt.Errorf("cannot diff: %w", err)
	}

	// index update
	err = indexRemove(c.Indexes, row)
	if err != nil {
		return fmt.Errorf("indexRemove: %w", err)
	}

	row.Payload = newPayload

	err = indexInsert(c.Indexes, row)
	if err != nil {
		return fmt.Errorf("indexInsert: %w", err)
	}

	if !persist {
		return nil
	}

	return c.persist("patch", map[string]any{
		"id":   row.ID,
		"diff": json.RawMessage(diff),
	})
}

func (c *Collection) SetDefaults(defaults map[string]any) error {
	return c.setDefaults(defaults, true)
}

func (c *Collection) setDefaults(defaults map[string]any, persist bool) error {
	c.Defaults = defaults
	if !persist {
		return nil
	}
	return c.persist("defaults", defaults)
}

// CreateIndex builds an index over the existing rows and records it in the
// log so it is rebuilt on open. Kind is "map" or "btree".
func (c *Collection) CreateIndex(command *CreateIndexCommand) error {
	return c.createIndex(command, true)
}

func (c *Collection) createIndex(command *CreateIndexCommand, persist bool) error {

	if _, exists := c.Indexes[command.Name]; exists {
		return fmt.Errorf("index '%s' already exists", command.Name)
	}

	index, err := NewIndex(command.Kind, command.Options)
	if err != nil {
		return err
	}

	for _, row := range c.Rows {
		err := index.AddRow(row)
		if err != nil {
			return fmt.Errorf("index row: %w, data: %s", err, string(row.Payload))
		}
	}
	c.Indexes[command.Name] = index

	if !persist {
		return nil
	}

	return c.persist("index", command)
}

func (c *Collection) DropIndex(name string) error {
	if _, exists := c.Indexes[name]; !exists {
		return fmt.Errorf("index '%s' not found", name)
	}
	delete(c.Indexes, name)
	return c.persist("dropIndex", map[string]any{"name": name})
}

func indexInsert(indexes map[string]Index, row *Row) (err error) {
	for _, index := range indexes {
		err = index.AddRow(row)
		if err != nil {
			break
		}
	}
	return
}

func indexRemove(indexes map[string]Index, row *Row) (err error) {
	for _, index := range indexes {
		err = index.RemoveRow(row)
		if err != nil {
			break
		}
	}
	return
}

func (c *Collection) Close() error {
	if c.file == nil {
		return nil
	}
	err := c.file.Close()
	c.file = nil
	return err
}

func (c *Collection) Drop() error {
	err := c.Close()
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	err = os.Remove(c.filename)
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}

	return nil
}
