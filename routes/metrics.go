package routes

import (
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
)

const unmatchedRouteLabel = "unmatched"

// SetupMetrics mounts /metrics and the request collectors. It must run before
// SetupRoutes so the handlers registered there are measured.
func SetupMetrics(router *gin.Engine, subsystem string) *ginprometheus.Prometheus {
	p := ginprometheus.NewPrometheus(subsystem)
	// label by route template; raw paths carry ids and would grow series without bound
	p.ReqCntURLLabelMappingFn = routeLabel
	p.Use(router)
	return p
}

func routeLabel(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return unmatchedRouteLabel
}
