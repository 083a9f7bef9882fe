package video

import (
	"context"
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

// VideoDelete permanently removes a video the requester owns, its like rows
// and its storage objects
func VideoDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	videoID := c.Param("videoId")
	if err := validators.IDValidator(videoID); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
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

	err = d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", video.ID).Delete(model.Like{}).Error; err != nil {
			return err
		}

		return tx.Delete(&video).Error
	})
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to delete video record", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := d.Uploader.Delete(context.Background(), video.FileKey, video.ThumbKey); err != nil {
		// The record is gone either way, the objects just linger
		zap.L().Error("Failed to delete storage objects", zap.Error(err), zap.String("requestID", requestID))
	}

	response.OK(c, video, "Video deleted successfully")
}
