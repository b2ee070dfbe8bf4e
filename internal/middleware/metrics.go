package middleware

import (
	"strconv"
	"time"

	"go-jobmarket/internal/obs"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency labelled by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		start := time.Now()
		obs.HTTPStarted()
		c.Next()
		obs.HTTPFinished(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), start)
	}
}
