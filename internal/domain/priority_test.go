package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input string
		want  Priority
		ok    bool
	}{
		{"low", PriorityLow, true},
		{"Medium", PriorityMedium, true},
		{" high ", PriorityHigh, true},
		{"URGENT", PriorityUrgent, true},
		{"", PriorityMedium, true},
		{"critical", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParsePriority(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriority_Info(t *testing.T) {
	tests := []struct {
		priority Priority
		want     PriorityInfo
	}{
		{PriorityLow, PriorityInfo{"Low", "🟢", "success"}},
		{PriorityMedium, PriorityInfo{"Medium", "🔵", "primary"}},
		{PriorityHigh, PriorityInfo{"High", "🟡", "warning"}},
		{PriorityUrgent, PriorityInfo{"Urgent", "🔴", "danger"}},
		{Priority("bogus"), PriorityInfo{"Medium", "🔵", "primary"}},
		{Priority(""), PriorityInfo{"Medium", "🔵", "primary"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.priority.Info())
			assert.Equal(t, tt.want.Label, tt.priority.Label())
			assert.Equal(t, tt.want.Icon, tt.priority.Icon())
			assert.Equal(t, tt.want.Class, tt.priority.Class())
		})
	}
}

func TestPriorities_Ordered(t *testing.T) {
	assert.Equal(t, []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}, Priorities)
}
