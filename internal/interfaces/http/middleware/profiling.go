package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/okayo/invoicing/internal/infrastructure/telemetry"
)

// Profiling attaches the method and route pattern to the CPU samples taken
// while a request is served, so profiles can be split per endpoint.
// Requests on skipped paths and unmatched routes are left unlabelled.
func Profiling(enabled bool, skipPaths ...string) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		route := c.FullPath()
		if _, skipped := skip[c.Request.URL.Path]; skipped || route == "" {
			c.Next()
			return
		}

		telemetry.WithRouteLabels(c.Request.Context(), c.Request.Method, route, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
