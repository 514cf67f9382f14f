package statusapi

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/dnsglass/passivedns/internal/statusapi/docs"
)

// registerRoutes wires the read-only introspection endpoints plus the
// Swagger UI. There are no config-mutation or zone-management routes
// here — the interpreter has no mutable state for an operator to write
// to.
func registerRoutes(r *gin.Engine, h *Handler) {
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/healthz", h.Healthz)
	r.GET("/stats", h.Stats)
	r.GET("/weirds/recent", h.WeirdsRecent)
}
