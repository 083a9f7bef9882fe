package user

import (
	"net/http"
	"vidtube/video-api/internal"
	"vidtube/video-api/internal/model"
	"vidtube/video-api/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserFetch returns the requester's profile along with their most recent
// uploads
func UserFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var user model.User
	err := d.DB.
		Where("id = ?", userID).
		First(&user).
		Error
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var videos []model.Video
	err = d.DB.
		Where("owner_id = ?", userID).
		Order("created_at desc").
		Limit(10).
		Find(&videos).
		Error
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to fetch user videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	response.OK(c, gin.H{"user": user, "videos": videos}, "User fetched successfully")
}
