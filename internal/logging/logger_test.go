package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"verbose", log.InfoLevel},
		{"", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestParseFormatter(t *testing.T) {
	assert.Equal(t, log.JSONFormatter, ParseFormatter("json"))
	assert.Equal(t, log.LogfmtFormatter, ParseFormatter("logfmt"))
	assert.Equal(t, log.TextFormatter, ParseFormatter("text"))
	assert.Equal(t, log.TextFormatter, ParseFormatter("unknown"))
}

func TestConfigure(t *testing.T) {
	previous := Logger()
	defer SetLogger(previous)

	var buf bytes.Buffer
	Configure(&buf, Options{Level: "warn", Format: "logfmt"})

	Info("dropped")
	Warn("stored value is corrupt", "key", "tasks-default")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.True(t, strings.Contains(out, "key=tasks-default"), "logfmt output should carry fields: %q", out)
}

func TestSetLoggerIgnoresNil(t *testing.T) {
	previous := Logger()
	SetLogger(nil)
	assert.Same(t, previous, Logger())
}
