package logging

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"ERROR":   LevelError,
		"warn":    LevelWarn,
		"Warning": LevelWarn,
		" debug ": LevelDebug,
		"INFO":    LevelInfo,
		"":        LevelInfo,
		"verbose": LevelInfo,
	} {
		assert.Equal(t, want, ParseLevel(in), in)
	}
	assert.Equal(t, "WARN", LevelWarn.String())
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	l := New(LevelWarn)
	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warn("shown %d", 3)
	l.Error("shown %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 3")
	assert.Contains(t, out, "[ERROR] shown 4")
	assert.True(t, l.Enabled(LevelError))
	assert.False(t, l.Enabled(LevelInfo))
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, LevelDebug, NewFromEnv().Level())

	var nilLogger *Logger
	assert.False(t, nilLogger.Enabled(LevelError))
}
