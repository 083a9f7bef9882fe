package video

import (
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

// VideoLike toggles the requester's like on a video and reports the
// resulting state plus the new count
func VideoLike(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	videoID := c.Param("videoId")
	if err := validators.IDValidator(videoID); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var exists bool
	err := d.DB.
		Model(model.Video{}).
		Select("count(*) > 0").
		Where("id = ?", videoID).
		Find(&exists).
		Error
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to check if video exists", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !exists {
		response.Fail(c, http.StatusNotFound, "Video not found")
		return
	}

	var liked bool

	err = d.DB.Transaction(func(tx *gorm.DB) error {
		var like model.Like
		err := tx.
			Where("video_id = ? AND user_id = ?", videoID, userID).
			First(&like).
			Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			liked = true
			return tx.Create(&model.Like{
				VideoID:   videoID,
				UserID:    userID,
				CreatedAt: time.Now().Unix(),
			}).Error
		}

		liked = false
		return tx.Delete(&like).Error
	})
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to toggle like", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var count int64
	err = d.DB.
		Model(model.Like{}).
		Where("video_id = ?", videoID).
		Count(&count).
		Error
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to count likes", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	response.OK(c, gin.H{"liked": liked, "likes": count}, "Toggled like successfully")
}
