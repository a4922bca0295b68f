package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by repositories and services. The HTTP layer maps
// them to status codes.
var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
)

// FieldError is one failed rule on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every failed rule of a single input.
type ValidationError struct {
	Summary string       `json:"-"`
	Fields  []FieldError `json:"details"`
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) HasErrors() bool { return e != nil && len(e.Fields) > 0 }

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	summary := e.Summary
	if summary == "" {
		summary = "Validatie gefaald"
	}
	return summary + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrBadRequest }

// Message returns the first field message, or "" when there is none.
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// UserError carries a message that is safe to show to the client.
type UserError struct {
	Kind    error
	Message string
}

func (e *UserError) Error() string { return e.Message }

func (e *UserError) Is(target error) bool { return target == e.Kind }

// BadRequest builds a 400-class error with a readable message.
func BadRequest(message string) error {
	return &UserError{Kind: ErrBadRequest, Message: message}
}

// NotFound builds a 404-class error with a readable message.
func NotFound(message string) error {
	return &UserError{Kind: ErrNotFound, Message: message}
}
