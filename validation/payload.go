package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"taskpro/api/models"
)

// MaxBatchSize caps the number of ids accepted by a bulk delete.
const MaxBatchSize = 100

// maxExactFloat is the largest integer a float64 holds exactly.
const maxExactFloat = 1 << 53

// Payload is an undecoded JSON object, kept raw so every field can be
// checked against its schema individually.
type Payload map[string]json.RawMessage

// PayloadSource yields a request payload on demand, so callers can finish
// their existence checks before the body is read.
type PayloadSource func() (Payload, error)

// StaticPayload wraps an already decoded payload.
func StaticPayload(p Payload) PayloadSource {
	return func() (Payload, error) { return p, nil }
}

// Read returns the payload, treating a nil source as an empty object.
func (src PayloadSource) Read() (Payload, error) {
	if src == nil {
		return Payload{}, nil
	}
	return src()
}

// InputError is a request-shape failure that is not tied to one field.
type InputError struct {
	Kind    error
	Message string
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Unwrap() error { return e.Kind }

// ParsePayload decodes a request body into a Payload. An absent or null
// body yields ErrEmptyPayload; anything other than a JSON object yields
// ErrMalformedPayload.
func ParsePayload(body []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrEmptyPayload
	}

	var payload Payload
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, &InputError{Kind: ErrMalformedPayload, Message: "Request body must be a JSON object."}
	}
	if payload == nil {
		payload = Payload{}
	}
	return payload, nil
}

// ParseIDList reads the bulk-delete id list stored under key.
func ParseIDList(payload Payload, key string) ([]int64, error) {
	raw, ok := payload[key]
	if !ok {
		return nil, &InputError{Kind: ErrIDListRequired, Message: fmt.Sprintf("A list of '%s' IDs is required.", key)}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return nil, &InputError{Kind: ErrIDListRequired, Message: fmt.Sprintf("A list of '%s' IDs is required.", key)}
	}

	if len(items) > MaxBatchSize {
		return nil, &InputError{Kind: ErrIDListTooLarge, Message: fmt.Sprintf("Batch limit exceeded (Max: %d).", MaxBatchSize)}
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		id, ok := parseInteger(item)
		if !ok {
			return nil, &InputError{Kind: ErrIDNotInteger, Message: "IDs must be integers."}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseInteger(raw json.RawMessage) (int64, bool) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return 0, false
	}
	number, ok := value.(json.Number)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(number.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeString(p Payload, field string, errs Errors) *string {
	raw, ok := p[field]
	if !ok {
		return nil
	}
	if isNull(raw) {
		errs.Add(field, msgNull)
		return nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		errs.Add(field, msgNotString)
		return nil
	}
	return &value
}

func decodeInt(p Payload, field string, errs Errors) *int {
	raw, ok := p[field]
	if !ok {
		return nil
	}
	if isNull(raw) {
		errs.Add(field, msgNull)
		return nil
	}
	value, ok := parseLenientInteger(raw)
	if !ok || int64(int(value)) != value {
		errs.Add(field, msgNotInteger)
		return nil
	}
	result := int(value)
	return &result
}

// parseLenientInteger accepts integer literals, numbers without a
// fractional part (2.0) and strings holding a decimal integer ("2").
func parseLenientInteger(raw json.RawMessage) (int64, bool) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return 0, false
	}

	switch v := value.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	case json.Number:
		if n, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) > maxExactFloat {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

func decodeTimestamp(p Payload, field string, errs Errors) *time.Time {
	raw, ok := p[field]
	if !ok {
		return nil
	}
	if isNull(raw) {
		errs.Add(field, msgNull)
		return nil
	}
	var value models.Timestamp
	if err := json.Unmarshal(raw, &value); err != nil {
		errs.Add(field, msgNotTimestamp)
		return nil
	}
	parsed := time.Time(value)
	return &parsed
}
