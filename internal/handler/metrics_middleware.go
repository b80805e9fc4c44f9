package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hotelhub/reservation/internal/metrics"
)

// RequestMetrics records per-route request durations. Unmatched paths share
// one label so they cannot blow up the metric cardinality.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordRequestDuration(c.Request.Context(), c.Request.Method+" "+route, time.Since(start).Seconds())
	}
}
