package statusapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler serves the read-only status endpoints backed by a Recorder.
type Handler struct {
	recorder *Recorder
}

func newHandler(recorder *Recorder) *Handler {
	return &Handler{recorder: recorder}
}

// Healthz godoc
// @Summary Liveness check
// @Description Always returns ok if the process is serving requests.
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Stats godoc
// @Summary Interpreter and resource statistics
// @Description Returns message/weird rate gauges plus process and host resource usage.
// @Tags system
// @Produce json
// @Success 200 {object} StatsSnapshot
// @Router /stats [get]
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.recorder.Snapshot())
}

// WeirdsRecent godoc
// @Summary Recently reported anomalies
// @Description Returns the most recently reported weird names, oldest first.
// @Tags system
// @Produce json
// @Success 200 {object} RecentWeirdsResponse
// @Router /weirds/recent [get]
func (h *Handler) WeirdsRecent(c *gin.Context) {
	c.JSON(http.StatusOK, RecentWeirdsResponse{Weirds: h.recorder.Recent()})
}
