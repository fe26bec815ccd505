//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// DtoMap turns a request DTO into its JSON object form and applies muts, so a test
// can send payloads the typed struct cannot express (missing or mistyped fields).
func DtoMap(t *testing.T, v any, muts ...func(map[string]any)) map[string]any {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)

	payload := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &payload))

	for _, mut := range muts {
		mut(payload)
	}
	return payload
}

// Field sets key to value; a nil value removes the key.
func Field(key string, value any) func(map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}
