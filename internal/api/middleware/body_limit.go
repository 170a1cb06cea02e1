package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// multipartSlack leaves room for multipart framing on top of the file limit.
const multipartSlack = 1 << 20

// UploadLimitKey holds the configured upload limit in the gin context.
const UploadLimitKey = "upload_limit"

// MaxBodySize caps the request body at limit plus multipart framing. A limit
// of zero or less disables the cap.
func MaxBodySize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Set(UploadLimitKey, limit)
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartSlack)
		}
		c.Next()
	}
}

// UploadLimit returns the limit configured by MaxBodySize, or fallback when
// none was set.
func UploadLimit(c *gin.Context, fallback int64) int64 {
	if limit, ok := c.Get(UploadLimitKey); ok {
		if n, ok := limit.(int64); ok {
			return n
		}
	}
	return fallback
}
