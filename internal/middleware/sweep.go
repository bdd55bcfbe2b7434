package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

type sweeper interface {
	MaybeSweep(ctx context.Context) bool
}

// Sweep gives the retention janitor a chance to run before the request is served.
func Sweep(j sweeper) gin.HandlerFunc {
	return func(c *gin.Context) {
		j.MaybeSweep(c.Request.Context())
		c.Next()
	}
}
