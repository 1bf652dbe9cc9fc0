package middleware

import (
	"time"

	"clothing-store/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency keyed by the matched route
// template, so path parameters do not explode label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.RequestStarted()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestFinished(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
