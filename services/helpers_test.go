package services

import (
	"encoding/json"
	"strconv"
	"testing"

	"taskpro/api/validation"

	"github.com/stretchr/testify/require"
)

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func mustJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func mustBody(t *testing.T, body string) validation.PayloadSource {
	t.Helper()
	return validation.StaticPayload(mustPayload(t, body))
}

// trackedBody fails like a malformed request body and records whether it
// was read.
func trackedBody(read *bool) validation.PayloadSource {
	return func() (validation.Payload, error) {
		*read = true
		return nil, &validation.InputError{Kind: validation.ErrMalformedPayload, Message: "Request body must be a JSON object."}
	}
}
