// Package video contains the handlers for the video endpoints
package video

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"vidtube/video-api/internal"
	"vidtube/video-api/internal/model"
	"vidtube/video-api/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Column allowlist for the sort stage. Anything else is rejected instead of
// being interpolated into the query.
var sortFields = map[string]string{
	"created_at": "created_at",
	"createdAt":  "created_at",
	"title":      "title",
	"duration":   "duration",
	"views":      "views",
}

// videoSummary is the list projection: only these fields plus the owner
// slice ever leave the list endpoint.
type videoSummary struct {
	ID          string `json:"id"`
	Thumbnail   string `json:"thumbnail"`
	VideoFile   string `json:"videoFile"`
	Title       string `json:"title"`
	Description string `json:"description"`

	Owner model.OwnerSummary `json:"owner"`
}

// scan target for the joined row before the owner columns get folded into
// the nested summary
type summaryRow struct {
	ID            string
	Thumbnail     string
	VideoFile     string
	Title         string
	Description   string
	OwnerFullName string
	OwnerUsername string
	OwnerAvatar   string
}

// VideoList runs the listing pipeline: match on title/description, join the
// owner summary, sort, then paginate with skip = (page-1)*limit. An empty
// query matches everything.
func VideoList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		response.Fail(c, http.StatusBadRequest, "Invalid page provided")
		return
	}

	limitStr := c.DefaultQuery("limit", viper.GetString("list.default_limit"))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > viper.GetInt("list.max_limit") {
		response.Fail(c, http.StatusBadRequest, "Invalid limit provided")
		return
	}

	sortBy := c.DefaultQuery("sortBy", viper.GetString("list.default_sort"))
	field, ok := sortFields[sortBy]
	if !ok {
		response.Fail(c, http.StatusBadRequest, "Invalid sort field provided")
		return
	}

	dir := "desc"
	if c.Query("sortType") == "asc" {
		dir = "asc"
	}

	// Secondary key keeps the order stable when the sort field ties
	order := fmt.Sprintf("videos.%s %s, videos.id", field, dir)

	q := d.DB.
		Model(model.Video{}).
		Joins("JOIN users ON users.id = videos.owner_id").
		Select(`videos.id, videos.thumbnail, videos.video_file, videos.title, videos.description,
			users.full_name AS owner_full_name, users.username AS owner_username, users.avatar AS owner_avatar`)

	if search := strings.ToLower(strings.TrimSpace(c.Query("query"))); search != "" {
		pattern := "%" + search + "%"
		q = q.Where("LOWER(videos.title) LIKE ? OR LOWER(videos.description) LIKE ?", pattern, pattern)
	}

	if ownerID := c.Query("userId"); ownerID != "" {
		q = q.Where("videos.owner_id = ?", ownerID)
	}

	var rows []summaryRow

	err = q.
		Order(order).
		Offset((page - 1) * limit).
		Limit(limit).
		Scan(&rows).
		Error
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to list videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	results := make([]videoSummary, 0, len(rows))
	for _, r := range rows {
		results = append(results, videoSummary{
			ID:          r.ID,
			Thumbnail:   r.Thumbnail,
			VideoFile:   r.VideoFile,
			Title:       r.Title,
			Description: r.Description,
			Owner: model.OwnerSummary{
				FullName: r.OwnerFullName,
				Username: r.OwnerUsername,
				Avatar:   r.OwnerAvatar,
			},
		})
	}

	response.OK(c, results, "Videos fetched successfully")
}
