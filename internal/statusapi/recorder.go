package statusapi

import (
	"sync"
	"time"

	"github.com/dnsglass/passivedns/internal/stats"
)

// recentWeirdsCap bounds how many of the most recent weird names the
// status API keeps in memory for /weirds/recent.
const recentWeirdsCap = 100

// Recorder accumulates the counters and moving averages internal/statusapi
// reports. A binary wiring the interpreter to a real event sink (e.g.
// internal/store) also feeds RecordMessage/RecordWeird here so the status
// surface has something to report without itself being in the parse path.
// Safe for concurrent use.
type Recorder struct {
	mu        sync.Mutex
	startTime time.Time
	gauge     *stats.InterpreterGauge
	recent    []string
	messages  uint64
	weirds    uint64
}

// NewRecorder builds an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{startTime: time.Now(), gauge: stats.NewInterpreterGauge()}
}

// RecordMessage notes that one DNS message was parsed (successfully or
// not — the rate gauge tracks parse volume, not success).
func (r *Recorder) RecordMessage() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages++
	r.gauge.RecordMessage()
}

// RecordWeird notes one reported anomaly by name.
func (r *Recorder) RecordWeird(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.weirds++
	r.gauge.RecordWeird()
	r.recent = append(r.recent, name)
	if len(r.recent) > recentWeirdsCap {
		r.recent = r.recent[len(r.recent)-recentWeirdsCap:]
	}
}

// Recent returns the most recently reported weird names, oldest first.
func (r *Recorder) Recent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.recent))
	copy(out, r.recent)
	return out
}

// Snapshot reports the running totals and rate gauges.
func (r *Recorder) Snapshot() StatsSnapshot {
	r.mu.Lock()
	rate := r.gauge.Snapshot()
	snap := StatsSnapshot{
		UptimeSeconds:  time.Since(r.startTime).Seconds(),
		MessagesTotal:  r.messages,
		WeirdsTotal:    r.weirds,
		MessagesPerSec: rate.MessagesPerSec,
		WeirdsPerSec:   rate.WeirdsPerSec,
	}
	r.mu.Unlock()

	res := stats.ReadResourceSnapshot()
	snap.ProcessRSSBytes = res.ProcessRSSBytes
	snap.ProcessCPUPct = res.ProcessCPUPct
	snap.HostMemUsedPct = res.HostMemUsedPct
	snap.HostCPUCount = res.HostCPUCount
	return snap
}
