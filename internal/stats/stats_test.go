package stats_test

import (
	"testing"

	"github.com/dnsglass/passivedns/internal/stats"
	"github.com/stretchr/testify/assert"
)

func TestInterpreterGaugeRecordsMessages(t *testing.T) {
	g := stats.NewInterpreterGauge()
	g.RecordMessage()
	g.RecordMessage()
	snap := g.Snapshot()
	assert.Greater(t, snap.MessagesPerSec, 0.0)
	assert.Equal(t, 0.0, snap.WeirdsPerSec)
}

func TestInterpreterGaugeRecordsWeirdsIndependently(t *testing.T) {
	g := stats.NewInterpreterGauge()
	g.RecordWeird()
	snap := g.Snapshot()
	assert.Equal(t, 0.0, snap.MessagesPerSec)
	assert.Greater(t, snap.WeirdsPerSec, 0.0)
}

func TestReadResourceSnapshotDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = stats.ReadResourceSnapshot()
	})
}
