package statusapi

// HealthResponse is the /healthz payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsSnapshot is the /stats payload: interpreter rate gauges plus
// process/host resource usage.
type StatsSnapshot struct {
	UptimeSeconds  float64 `json:"uptime_seconds"`
	MessagesTotal  uint64  `json:"messages_total"`
	WeirdsTotal    uint64  `json:"weirds_total"`
	MessagesPerSec float64 `json:"messages_per_sec"`
	WeirdsPerSec   float64 `json:"weirds_per_sec"`

	ProcessRSSBytes uint64  `json:"process_rss_bytes"`
	ProcessCPUPct   float64 `json:"process_cpu_pct"`
	HostMemUsedPct  float64 `json:"host_mem_used_pct"`
	HostCPUCount    int     `json:"host_cpu_count"`
}

// RecentWeirdsResponse is the /weirds/recent payload.
type RecentWeirdsResponse struct {
	Weirds []string `json:"weirds"`
}

// ErrorResponse is the shared error body shape, matching the teacher
// API's models.ErrorResponse.
type ErrorResponse struct {
	Error string `json:"error"`
}
