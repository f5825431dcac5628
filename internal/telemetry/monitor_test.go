package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonitorAccumulatesElapsedAndCountPerTag(t *testing.T) {
	m := NewMonitor()

	stop := m.Start(context.Background(), "multigrid")
	stop(4)

	stop = m.Start(context.Background(), "multigrid")
	stop(4)

	var buf bytes.Buffer
	m.Summary(&buf)

	assert.Contains(t, buf.String(), "multigrid")
	assert.Contains(t, buf.String(), "count=8")
}

func TestMonitorSummaryPreservesFirstSeenOrder(t *testing.T) {
	m := NewMonitor()
	m.Start(context.Background(), "flat")(1)
	m.Start(context.Background(), "multigrid")(1)

	var buf bytes.Buffer
	m.Summary(&buf)

	flatIdx := indexOf(buf.String(), "flat")
	mgIdx := indexOf(buf.String(), "multigrid")
	assert.Less(t, flatIdx, mgIdx)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
