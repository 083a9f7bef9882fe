package middleware

import (
	"net/http"
	"strings"
	"vidtube/video-api/pkg/response"

	"github.com/gin-gonic/gin"
)

func BodySizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Fast reject for legit requests
		if c.Request.ContentLength > maxBytes {
			response.AbortFail(c, http.StatusRequestEntityTooLarge, "Request body size exceeds limit")
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()

		if c.Errors.Last() != nil {
			if strings.Contains(c.Errors.Last().Error(), "http: request body too large") {
				response.Fail(c, http.StatusRequestEntityTooLarge, "Request body size exceeds limit")
			}
			return
		}
	}
}
