package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterState_IsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		filters  FilterState
		expected bool
	}{
		{"zero value", FilterState{}, true},
		{"year set", FilterState{Year: "2024"}, false},
		{"month set", FilterState{Month: "06"}, false},
		{"status set", FilterState{Status: "pending"}, false},
		{"tag set", FilterState{Tag: "#work"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filters.IsEmpty())
		})
	}
}
