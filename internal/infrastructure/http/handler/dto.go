package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rezkam/todo/internal/domain"
)

// Response messages. Kept verbatim for clients that match on them.
const (
	msgSuccess        = "Success"
	msgFailed         = "Failed"
	msgListFailed     = "Failed to list todos"
	msgCreated        = "Todo Created with ID : "
	msgCreateFailed   = "Failed to create todo"
	msgDeleted        = "Deleted Successfully"
	msgDeleteNotFound = "No element found!"
	msgDeleteFailed   = "Something went wrong!"
	msgUpdated        = "Successfull Updated"
	msgUpdateNotFound = "No such todo found!"
	msgUpdateFailed   = "Failed to update todo"
)

// todoRequest is the body of create and update requests.
// ID is accepted for compatibility; create ignores it and update requires it to match the path.
type todoRequest struct {
	ID   *string `json:"id,omitempty"`
	Text *string `json:"text"`
}

// errInvalidJSON is reported when the body cannot be decoded.
type errInvalidJSON struct {
	err error
}

func (e errInvalidJSON) Error() string {
	return "invalid JSON: " + e.err.Error()
}

func (e errInvalidJSON) Unwrap() error {
	return e.err
}

// errTrailingData is reported when the body holds more than one JSON value.
var errTrailingData = errors.New("unexpected data after JSON object")

// decodeTodoRequest reads exactly one todoRequest and checks that text is present.
func decodeTodoRequest(r *http.Request) (todoRequest, error) {
	var req todoRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		return req, errInvalidJSON{err: err}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return req, errInvalidJSON{err: errTrailingData}
	}
	if req.Text == nil {
		return req, domain.ErrTextRequired
	}
	return req, nil
}
