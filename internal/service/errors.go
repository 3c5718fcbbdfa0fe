package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInternal  = errors.New("internal server error")
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("no access")
)

// ValidationError maps request fields to a message describing what is wrong
// with them.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{
		Fields: make(map[string]string),
	}
}

// Add records msg for field unless the field already has a message.
func (e *ValidationError) Add(field string, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) Merge(other *ValidationError) {
	for field, msg := range other.Fields {
		e.Add(field, msg)
	}
}

func (e *ValidationError) Any() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}
