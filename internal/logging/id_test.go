package logging

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	id := NewRequestID()
	assert.False(t, id.IsNil())

	id, ok := ParseRequestID("645a9c23-9590-49d0-879e-250bff5b621a")
	require.True(t, ok)
	assert.False(t, id.IsNil())
	assert.Equal(t, "645a9c23-9590-49d0-879e-250bff5b621a", id.String())
}

func TestRequestIDRandomness(t *testing.T) {
	assert.NotEqual(t, NewRequestID(), NewRequestID())
}

func TestNilRequestID(t *testing.T) {
	id := NilRequestID()
	assert.True(t, id.IsNil())
	assert.Equal(t, "00000000-0000-0000-0000-000000000000", id.String())

	id, ok := ParseRequestID("00000000-0000-0000-0000-000000000000")
	require.True(t, ok)
	assert.True(t, id.IsNil())
}

func TestParseRequestIDFormat(t *testing.T) {
	tests := map[string]struct {
		input string
		ok    bool
	}{
		"lower case":     {"645a9c23-9590-49d0-879e-250bff5b621a", true},
		"upper case":     {"645A9C23-9590-49D0-879E-250BFF5B621A", false},
		"trailing char":  {"645a9c23-9590-49d0-879e-250bff5b621aF", false},
		"too short":      {"645a9c23-9590-49d0-879e-250bff5b621", false},
		"no hyphens":     {"645a9c23959049d0879e250bff5b621a", false},
		"braced":         {"{645a9c23-9590-49d0-879e-250bff5b621a}", false},
		"empty":          {"", false},
		"not hex at all": {"zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz", false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, ok := ParseRequestID(tc.input)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestRequestIDJSON(t *testing.T) {
	id, ok := ParseRequestID("645a9c23-9590-49d0-879e-250bff5b621a")
	require.True(t, ok)

	b, err := json.Marshal(map[string]RequestID{"id": id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"645a9c23-9590-49d0-879e-250bff5b621a"}`, string(b))
}
