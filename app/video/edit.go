package video

import (
	"errors"
	"net/http"
	"strings"
	"vidtube/video-api/internal"
	"vidtube/video-api/internal/model"
	"vidtube/video-api/pkg/response"
	"vidtube/video-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type videoEditOpts struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// VideoEdit overwrites the metadata of a video the requester owns and
// returns the updated record
func VideoEdit(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	videoID := c.Param("videoId")
	if err := validators.IDValidator(videoID); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var data videoEditOpts
	if err := c.BindJSON(&data); err != nil {
		response.Fail(c, http.StatusBadRequest, "Malformed or invalid JSON request body")
		return
	}

	if data.Title == nil && data.Description == nil {
		response.Fail(c, http.StatusBadRequest, "No edit options provided")
		return
	}

	if data.Title != nil && strings.TrimSpace(*data.Title) == "" {
		response.Fail(c, http.StatusBadRequest, "Title can't be empty")
		return
	}

	if data.Description != nil && strings.TrimSpace(*data.Description) == "" {
		response.Fail(c, http.StatusBadRequest, "Description can't be empty")
		return
	}

	var video model.Video
	err := d.DB.
		Where("id = ? AND owner_id = ?", videoID, userID).
		First(&video).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "Video not found. It either doesn't exist or you don't own it")
			return
		}

		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to fetch video from db", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Title != nil {
		video.Title = strings.TrimSpace(*data.Title)
	}

	if data.Description != nil {
		video.Description = strings.TrimSpace(*data.Description)
	}

	if err := d.DB.Save(&video).Error; err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to update video", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	response.OK(c, video, "Video details updated successfully")
}
