package video

import (
	"context"
	"errors"
	"net/http"
	"time"
	"vidtube/video-api/internal"
	"vidtube/video-api/internal/model"
	"vidtube/video-api/pkg/response"
	"vidtube/video-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VideoThumbnail replaces the thumbnail of a video the requester owns. The
// new image is stored first, the record updated after, and the old object
// removed last so a failure never leaves the record pointing at nothing.
func VideoThumbnail(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	videoID := c.Param("videoId")
	if err := validators.IDValidator(videoID); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	thumbFh, err := c.FormFile("thumbnail")
	if err != nil || thumbFh == nil {
		response.Fail(c, http.StatusBadRequest, "No thumbnail file provided")
		return
	}

	code, thumbCT, tf, err := validators.ImageValidator(thumbFh)
	if err != nil {
		response.Fail(c, code, err.Error())
		return
	}
	tf.Close()

	var video model.Video
	err = d.DB.
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

	thumbTemp, err := saveTemp(c, thumbFh, "thumb-*")
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to buffer thumbnail file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Minute)
	defer cancel()

	thumb, err := d.Uploader.Upload(ctx, thumbTemp, thumbCT)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to store thumbnail file")
		zap.L().Error("Failed to upload thumbnail", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	oldKey := video.ThumbKey
	video.Thumbnail = thumb.URL
	video.ThumbKey = thumb.Key

	if err := d.DB.Save(&video).Error; err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to update video thumbnail", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if oldKey != "" && oldKey != thumb.Key {
		if err := d.Uploader.Delete(context.Background(), oldKey); err != nil {
			zap.L().Error("Failed to delete old thumbnail object", zap.Error(err), zap.String("key", oldKey))
		}
	}

	response.OK(c, video, "Video thumbnail updated successfully")
}
