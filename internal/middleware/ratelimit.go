package middleware

import (
	"github.com/didip/tollbooth/v6"
	"github.com/didip/tollbooth/v6/limiter"
	"github.com/gin-gonic/gin"
)

// RateLimit throttles a route to maxPerSecond requests per client IP.
// Used on the credential endpoints so the per-account lockout cannot be
// probed at wire speed.
func RateLimit(maxPerSecond float64) gin.HandlerFunc {
	lmt := tollbooth.NewLimiter(maxPerSecond, nil)
	lmt.SetIPLookups([]string{"X-Forwarded-For", "RemoteAddr", "X-Real-IP"})
	lmt.SetMessageContentType("application/json")
	lmt.SetMessage(`{"error":"Too many requests, slow down"}`)
	return limitHandler(lmt)
}

func limitHandler(lmt *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if httpError := tollbooth.LimitByRequest(lmt, c.Writer, c.Request); httpError != nil {
			c.Header("Content-Type", lmt.GetMessageContentType())
			c.String(httpError.StatusCode, lmt.GetMessage())
			c.Abort()
			return
		}
		c.Next()
	}
}
