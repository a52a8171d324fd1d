//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Mutation edits a request body decoded into a generic map.
type Mutation func(map[string]any)

// DtoMap turns a request DTO into its JSON map so tests can send shapes the
// typed DTO cannot express, such as unknown or wrongly typed fields.
func DtoMap(t *testing.T, v any, muts ...Mutation) map[string]any {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, mut := range muts {
		mut(m)
	}
	return m
}

// Field sets key to value. A nil value removes the key.
func Field(key string, value any) Mutation {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}

// ItemField edits the i-th entry of the "items" array.
func ItemField(i int, key string, value any) Mutation {
	return func(m map[string]any) {
		items, ok := m["items"].([]any)
		if !ok || i >= len(items) {
			return
		}
		if item, ok := items[i].(map[string]any); ok {
			Field(key, value)(item)
		}
	}
}
