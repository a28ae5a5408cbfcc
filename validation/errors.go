package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrEmptyPayload     = errors.New("no input data provided")
	ErrMalformedPayload = errors.New("request body must be a JSON object")
	ErrIDListRequired   = errors.New("a list of IDs is required")
	ErrIDListTooLarge   = errors.New("batch limit exceeded")
	ErrIDNotInteger     = errors.New("IDs must be integers")
)

const (
	msgUnknownField  = "Unknown field."
	msgRequired      = "Missing data for required field."
	msgNull          = "Field may not be null."
	msgNotString     = "Not a valid string."
	msgNotInteger    = "Not a valid integer."
	msgNotTimestamp  = "Not a valid datetime."
	msgInvalidFormat = "Invalid value."
)

// Errors maps a payload field to every message raised against it.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e[field], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
