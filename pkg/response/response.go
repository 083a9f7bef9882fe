// Package response defines the JSON envelopes every endpoint answers with.
// Success is {status, data, message, requestID}, failure is
// {status, success:false, message, requestID}. No handler builds its own
// JSON shape.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, gin.H{
		"status":    http.StatusOK,
		"data":      data,
		"message":   message,
		"requestID": c.GetString("requestID"),
	})
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"status":    status,
		"success":   false,
		"message":   message,
		"requestID": c.GetString("requestID"),
	})
}

// AbortFail is the middleware variant of Fail
func AbortFail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"status":    status,
		"success":   false,
		"message":   message,
		"requestID": c.GetString("requestID"),
	})
}
