// Package root contains the endpoints that don't belong to any resource
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}
