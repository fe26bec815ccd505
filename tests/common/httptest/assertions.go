//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errorBody mirrors httperr's {"error": {"message": ...}} envelope.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// AssertSuccessResponse checks the status and, for 2xx with a target, decodes the body into it.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if target == nil || expectedStatus < 200 || expectedStatus >= 300 {
		return
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "response is not valid JSON: %s", w.Body.String())
}

// AssertErrorResponse checks the status and that the error message contains expectedMsg (skipped when empty).
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var body errorBody
	if !assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "error response is not valid JSON: %s", w.Body.String()) {
		return
	}
	if expectedMsg != "" {
		assert.Contains(t, body.Error.Message, expectedMsg)
	}
}
