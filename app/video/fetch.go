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

type videoDetail struct {
	model.Video

	Owner model.OwnerSummary `json:"owner"`
	Likes int64              `json:"likes"`
}

type detailRow struct {
	model.Video

	OwnerFullName string
	OwnerUsername string
	OwnerAvatar   string
	LikeCount     int64
}

// VideoFetch returns a single video with its owner summary and like count.
// A malformed id is rejected before the database is touched.
func VideoFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	videoID := c.Param("videoId")
	if err := validators.IDValidator(videoID); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var row detailRow

	err := d.DB.
		Model(model.Video{}).
		Joins("JOIN users ON users.id = videos.owner_id").
		Select(`videos.*,
			users.full_name AS owner_full_name, users.username AS owner_username, users.avatar AS owner_avatar,
			(SELECT count(*) FROM likes WHERE likes.video_id = videos.id) AS like_count`).
		Where("videos.id = ?", videoID).
		Take(&row).
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

	response.OK(c, videoDetail{
		Video: row.Video,
		Owner: model.OwnerSummary{
			FullName: row.OwnerFullName,
			Username: row.OwnerUsername,
			Avatar:   row.OwnerAvatar,
		},
		Likes: row.LikeCount,
	}, "Video fetched successfully")
}
