package syncd

import (
	"encoding/json"

	"github.com/jot-format/go-jot"
)

// EditFrame is what a client sends over a document websocket: a delta
// rooted at the revision the client last saw.
type EditFrame struct {
	Rev   int       `json:"rev"`
	Delta jot.Delta `json:"delta"`
}

// UpdateFrame is what the server sends: the committed delta, rebased
// onto the head revision. Value is set only on the initial snapshot.
type UpdateFrame struct {
	Rev   int             `json:"rev"`
	Delta jot.Delta       `json:"delta,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

// AckFrame confirms a client's own edit with its committed revision.
type AckFrame struct {
	Rev int  `json:"rev"`
	Ack bool `json:"ack"`
}

// DocResponse is the REST shape of a document snapshot.
type DocResponse struct {
	ID    string          `json:"id"`
	Rev   int             `json:"rev"`
	Value json.RawMessage `json:"value"`
}

// CreateRequest creates a document, optionally with a caller-chosen ID
// and initial value.
type CreateRequest struct {
	ID    string          `json:"id,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

// ErrorResponse is the REST error shape.
type ErrorResponse struct {
	Error string `json:"error"`
}
