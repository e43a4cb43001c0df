package sqlite

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{"UTC whole seconds", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), "2024-01-15T10:30:00Z"},
		{"Offset converted to UTC", time.Date(2024, 1, 15, 11, 30, 0, 0, loc), "2024-01-15T10:30:00Z"},
		{"Nanoseconds kept", time.Date(2024, 1, 15, 10, 30, 0, 123000000, time.UTC), "2024-01-15T10:30:00.123Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimeForDB(tt.input))
		})
	}
}

func TestParseTimeFromDB_RoundTrip(t *testing.T) {
	original := time.Date(2024, 6, 23, 11, 47, 24, 890799237, time.UTC)

	parsed, err := ParseTimeFromDB(FormatTimeForDB(original))
	require.NoError(t, err)
	assert.True(t, original.Equal(parsed))

	_, err = ParseTimeFromDB("2024-06-23 11:47:24")
	assert.Error(t, err)
}

func TestHeaderEncoding(t *testing.T) {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Add("Vary", "Accept")
	h.Add("Vary", "Origin")

	encoded, err := EncodeHeader(h)
	require.NoError(t, err)

	decoded, err := DecodeHeader(encoded)
	require.NoError(t, err)
	assert.Equal(t, h, decoded)

	encoded, err = EncodeHeader(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", encoded)

	decoded, err = DecodeHeader("")
	require.NoError(t, err)
	assert.Empty(t, decoded)
}
