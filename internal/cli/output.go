package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"futurtask/internal/domain"
	"futurtask/internal/errors"
)

// Output formats accepted by --format
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	headingStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("245"))
	highlightStyle = lipgloss.NewStyle().Reverse(true)
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	classStyles = map[string]lipgloss.Style{
		"success": lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		"primary": lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		"warning": lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"danger":  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

// highlightMark wraps a search match for terminal display
func highlightMark(s string) string {
	return highlightStyle.Render(s)
}

// priorityBadge renders the priority icon and label in its colour class
func priorityBadge(p domain.Priority) string {
	info := p.Info()
	style, ok := classStyles[info.Class]
	if !ok {
		style = lipgloss.NewStyle()
	}
	return style.Render(info.Icon + " " + info.Label)
}

// statusMark is the checkbox shown before a task
func statusMark(task domain.Task) string {
	if task.IsCompleted() {
		return "[x]"
	}
	return "[ ]"
}

// formatTaskLine renders one task. title is passed in already highlighted.
func formatTaskLine(task domain.Task, title string, overdue bool) string {
	if task.IsCompleted() {
		title = doneStyle.Render(title)
	}
	date := task.Date
	if overdue {
		date = overdueStyle.Render(date + " overdue")
	}

	parts := []string{statusMark(task), mutedStyle.Render(task.ID), title, date, priorityBadge(task.Priority)}
	if len(task.Tags) > 0 {
		parts = append(parts, mutedStyle.Render(domain.FormatTags(task.Tags)))
	}
	return strings.Join(parts, "  ")
}

// validateFormat rejects formats a command does not support
func validateFormat(format string, allowed ...string) error {
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}
	return errors.NewInvalidInputError("format", format, "must be one of: "+strings.Join(allowed, ", "))
}

// writeStructured encodes v as JSON or YAML
func writeStructured(w io.Writer, format string, v interface{}) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return errors.NewInvalidInputError("format", format, "unsupported format")
	}
}

func printf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}
