// Package stats keeps a moving-average rate gauge per interpreter
// (messages/sec and weirds/sec) plus process/host resource gauges, for
// internal/statusapi to surface.
package stats

import (
	"sync"
	"time"

	"github.com/VividCortex/ewma"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// decay mirrors DNSCrypt-proxy's RTT EWMA decay constant: a short window
// so the rate gauges track recent activity rather than a session-long
// average.
const decay = 0.3

// InterpreterGauge tracks a moving-average messages/sec and weirds/sec
// rate for one flow's interpreter. Safe for concurrent use.
type InterpreterGauge struct {
	mu        sync.Mutex
	msgRate   ewma.MovingAverage
	weirdRate ewma.MovingAverage
	lastTick  time.Time
}

// NewInterpreterGauge builds a gauge with a fresh moving average.
// ewma.NewMovingAverage takes an age in samples, not a decay factor, so
// decay is converted to the age that yields it. Set ends the library's
// 10-sample warm-up, during which Value would otherwise read 0.
func NewInterpreterGauge() *InterpreterGauge {
	g := &InterpreterGauge{
		msgRate:   ewma.NewMovingAverage(2/decay - 1),
		weirdRate: ewma.NewMovingAverage(2/decay - 1),
		lastTick:  time.Now(),
	}
	g.msgRate.Set(0)
	g.weirdRate.Set(0)
	return g
}

// RecordMessage folds in one more parsed message toward the messages/sec
// average.
func (g *InterpreterGauge) RecordMessage() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.msgRate.Add(g.perSecond())
}

// RecordWeird folds in one more reported anomaly toward the weirds/sec
// average.
func (g *InterpreterGauge) RecordWeird() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.weirdRate.Add(g.perSecond())
}

// perSecond converts the gap since the last sample into a rate sample;
// called with mu held.
func (g *InterpreterGauge) perSecond() float64 {
	now := time.Now()
	elapsed := now.Sub(g.lastTick).Seconds()
	g.lastTick = now
	if elapsed <= 0 {
		return 0
	}
	return 1 / elapsed
}

// Snapshot is a point-in-time read of one gauge.
type Snapshot struct {
	MessagesPerSec float64
	WeirdsPerSec   float64
}

// Snapshot returns the current moving averages.
func (g *InterpreterGauge) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Snapshot{MessagesPerSec: g.msgRate.Value(), WeirdsPerSec: g.weirdRate.Value()}
}

// ResourceSnapshot is a point-in-time read of process and host resource
// usage, folded into the same status payload as the rate gauges.
type ResourceSnapshot struct {
	ProcessRSSBytes  uint64
	ProcessCPUPct    float64
	HostMemUsedPct   float64
	HostCPUCount     int
}

// ReadResourceSnapshot samples the current process and host resource
// usage via gopsutil. Errors from any one probe are swallowed and leave
// that field zero — a status endpoint shouldn't fail just because one
// resource probe isn't available on the host.
func ReadResourceSnapshot() ResourceSnapshot {
	var snap ResourceSnapshot

	if p, err := process.NewProcess(int32(processPID())); err == nil {
		if mi, err := p.MemoryInfo(); err == nil && mi != nil {
			snap.ProcessRSSBytes = mi.RSS
		}
		if pct, err := p.CPUPercent(); err == nil {
			snap.ProcessCPUPct = pct
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		snap.HostMemUsedPct = vm.UsedPercent
	}
	if counts, err := cpu.Counts(true); err == nil {
		snap.HostCPUCount = counts
	}
	return snap
}
