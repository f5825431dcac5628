package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLoggerPairsArgsAsKeyValue(t *testing.T) {
	var buf bytes.Buffer
	log := NewDefaultLogger(&buf, LevelDebug)

	log.Info("solver converged", "iterations", 12, "residual", 0.0004)

	line := buf.String()
	assert.Contains(t, line, "solver converged")
	assert.Contains(t, line, "iterations=12")
	assert.Contains(t, line, "residual=0.0004")
}

func TestDefaultLoggerAppendsTrailingUnpairedArg(t *testing.T) {
	var buf bytes.Buffer
	log := NewDefaultLogger(&buf, LevelDebug)

	log.Warn("unexpected value", "lonely")

	assert.True(t, strings.HasSuffix(strings.TrimSpace(buf.String()), "lonely"))
}

func TestDefaultLoggerSuppressesBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewDefaultLogger(&buf, LevelWarn)

	log.Debug("should not appear")
	log.Info("also should not appear")
	assert.Empty(t, buf.String())

	log.Warn("this one should appear")
	assert.NotEmpty(t, buf.String())
}

func TestWithFieldsMergesAndIsImmutable(t *testing.T) {
	var buf bytes.Buffer
	base := NewDefaultLogger(&buf, LevelDebug)

	child := base.WithField("unit", 3).WithFields(map[string]any{"level": 0})
	child.Info("sweep done")

	line := buf.String()
	assert.Contains(t, line, "unit=3")
	assert.Contains(t, line, "level=0")

	buf.Reset()
	base.Info("unrelated")
	assert.NotContains(t, buf.String(), "unit=3", "fields attached to a child logger must not leak back to the parent")
}
