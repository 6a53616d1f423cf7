package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eduverse/portal-api/internal/service"
)

// unmeasured keeps the operational endpoints out of their own numbers.
var unmeasured = map[string]struct{}{
	"/metrics": {},
	"/health":  {},
}

// Metrics records duration and count per method/route/status. The route
// template is used as the path label so parameterised requests share one
// series.
func Metrics(metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}
		if _, skip := unmeasured[c.Request.URL.Path]; skip {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
