package video

import (
	"errors"
	"net/http"
	"vidtube/video-api/internal"
	"vidtube/video-api/internal/model"
	"vidtube/video-api/pkg/response"
	"vidtube/video-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VideoToggle flips the draft/published flag. Unlike the other mutations it
// reports 401 instead of 404 on an ownership mismatch, so a non-owner learns
// the video exists but not more.
func VideoToggle(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	videoID := c.Param("videoId")
	if err := validators.IDValidator(videoID); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var video model.Video
	err := d.DB.
		Where("id = ?", videoID).
		First(&video).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "Video not found")
			return
		}

		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to fetch video from db", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if video.OwnerID != userID {
		response.Fail(c, http.StatusUnauthorized, "Only the owner may toggle the publish status")
		return
	}

	video.IsPublished = !video.IsPublished

	if err := d.DB.Model(&video).Update("is_published", video.IsPublished).Error; err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to toggle publish status", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	response.OK(c, gin.H{"isPublished": video.IsPublished}, "Toggled publish status successfully")
}
