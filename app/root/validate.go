package root

import (
	"vidtube/video-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// Validate only runs when the JWT middleware let the request through, so
// all that's left to do is echo the resolved user
func Validate(c *gin.Context) {
	response.OK(c, gin.H{"userID": c.GetString("userID")}, "Token is valid")
}
