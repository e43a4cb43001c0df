package domain

import "strings"

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// PriorityInfo is the display metadata for a priority.
type PriorityInfo struct {
	Label string
	Icon  string
	Class string
}

// ParsePriority parses a priority name. The empty string parses as medium;
// anything else unknown fails.
func ParsePriority(s string) (Priority, bool) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PriorityMedium, true
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return p, true
	default:
		return "", false
	}
}

// Normalize maps unknown or empty priorities to medium.
func (p Priority) Normalize() Priority {
	if parsed, ok := ParsePriority(string(p)); ok {
		return parsed
	}
	return PriorityMedium
}

// Info returns the label, icon and colour class for the priority.
func (p Priority) Info() PriorityInfo {
	switch p.Normalize() {
	case PriorityLow:
		return PriorityInfo{Label: "Low", Icon: "🟢", Class: "success"}
	case PriorityHigh:
		return PriorityInfo{Label: "High", Icon: "🟡", Class: "warning"}
	case PriorityUrgent:
		return PriorityInfo{Label: "Urgent", Icon: "🔴", Class: "danger"}
	default:
		return PriorityInfo{Label: "Medium", Icon: "🔵", Class: "primary"}
	}
}

// Label returns the display label.
func (p Priority) Label() string { return p.Info().Label }

// Icon returns the display glyph.
func (p Priority) Icon() string { return p.Info().Icon }

// Class returns the colour class.
func (p Priority) Class() string { return p.Info().Class }
