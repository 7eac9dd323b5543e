// Package codec converts a task list to and from its persisted text form:
// a JSON array of {"title", "description"} objects.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/simpletodo/internal/model"
)

// ErrMalformed marks stored text that is not an array of task objects.
var ErrMalformed = errors.New("malformed task data")

// FormatError reports where decoding failed. It matches ErrMalformed with errors.Is.
type FormatError struct {
	Path string // slash separated instance location, empty for the document root
	Err  error
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", ErrMalformed, e.Err)
	}
	return fmt.Sprintf("%s at %s: %v", ErrMalformed, e.Path, e.Err)
}

func (e *FormatError) Unwrap() []error { return []error{ErrMalformed, e.Err} }

// wireTask fixes the field order of the persisted objects.
type wireTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Encode serializes tasks in list order. A nil or empty list yields "[]".
func Encode(tasks []model.Task) ([]byte, error) {
	out := make([]wireTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, wireTask{Title: t.Title, Description: t.Description})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decode parses persisted text. Blank input is an empty list. Each element
// needs a string title; a missing or null description becomes "".
// Decoded tasks get fresh IDs.
func Decode(data []byte) ([]model.Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Task{}, nil
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &FormatError{Err: err}
	}
	if err := tasksSchema.Validate(doc); err != nil {
		return nil, schemaError(err)
	}

	var in []wireTask
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, &FormatError{Err: err}
	}
	tasks := make([]model.Task, 0, len(in))
	for _, w := range in {
		tasks = append(tasks, model.New(w.Title, w.Description))
	}
	return tasks, nil
}

// schemaError reduces a validation error tree to its first leaf cause.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &FormatError{Err: err}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &FormatError{
		Path: strings.TrimPrefix(ve.InstanceLocation, "/"),
		Err:  errors.New(ve.Message),
	}
}
