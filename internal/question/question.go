// Package question holds the question set published by the scoring service.
// Records are kept opaque: only the task identifier is interpreted.
package question

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/agents-course/taskfetch/internal/fileutils"
)

var (
	// ErrMissingTaskID is returned when a record has no usable task_id.
	ErrMissingTaskID = errors.New("record has no task_id")
	// ErrInvalidTaskID is returned when the task_id of a record is not a string or number,
	// or is a dot path segment that cannot name a file endpoint.
	ErrInvalidTaskID = errors.New("record task_id is not a string or number")
)

// TaskIDKey is the record field identifying a task.
const TaskIDKey = "task_id"

// Record is one question, as decoded from the service.
type Record map[string]any

// Set is the ordered collection of questions returned by the service.
type Set []Record

// Decode decodes a question set from a JSON array.
func Decode(data []byte) (Set, error) {
	var s Set
	if err := fileutils.ParseJSON(bytes.NewReader(data), &s); err != nil {
		return nil, err
	}
	if s == nil {
		// null is valid JSON for a slice, but not a question set.
		return nil, fmt.Errorf("question set is null")
	}
	return s, nil
}

// TaskID returns the task identifier of the record.
func (r Record) TaskID() (string, error) {
	v, ok := r[TaskIDKey]
	if !ok || v == nil {
		return "", ErrMissingTaskID
	}

	var id string
	switch t := v.(type) {
	case string:
		id = t
	case json.Number:
		id = t.String()
	default:
		return "", fmt.Errorf("%w: got %T", ErrInvalidTaskID, v)
	}

	switch id {
	case "":
		return "", ErrMissingTaskID
	case ".", "..":
		// URL resolution would turn these into the parent endpoints.
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskID, id)
	}
	return id, nil
}
