package collection

import "encoding/json"

// Command is one entry of the append-only collection log. Replaying the log
// from the beginning rebuilds the in-memory state.
type Command struct {
	Name      string          `json:"name"`
	Uuid      string          `json:"uuid"`
	Timestamp int64           `json:"timestamp"`
	StartByte int64           `json:"start_byte"`
	Payload   json.RawMessage `json:"payload"`
}

type CreateIndexCommand struct {
	Name    string          `json:"name"`
	Kind    string          `json:"kind"`
	Options json.RawMessage `json:"options"`
}
