package video

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"vidtube/video-api/internal"
	"vidtube/video-api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deleteRequest(t *testing.T, d *internal.Deps, userID, videoID string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("DELETE", "/api/videos/x", nil)

	c, w := newTestContext(t, req)
	c.Set("userID", userID)
	c.Params = gin.Params{{Key: "videoId", Value: videoID}}

	VideoDelete(c, d)
	return w
}

func TestVideoDelete_Success(t *testing.T) {
	d, up := setupDeps(t)

	owner := seedUser(t, d.DB, "Owner", "owner")
	fan := seedUser(t, d.DB, "Fan", "fan")
	video := seedVideo(t, d.DB, owner, "doomed", "going away")
	seedLike(t, d.DB, fan.ID, video.ID)

	w := deleteRequest(t, d, owner.ID, video.ID)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, d.DB.Model(model.Video{}).Where("id = ?", video.ID).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, d.DB.Model(model.Like{}).Where("video_id = ?", video.ID).Count(&count).Error)
	assert.Zero(t, count)

	assert.ElementsMatch(t, []string{video.FileKey, video.ThumbKey}, up.deleted)
}

func TestVideoDelete_ThenFetchNotFound(t *testing.T) {
	d, _ := setupDeps(t)

	owner := seedUser(t, d.DB, "Owner", "owner")
	video := seedVideo(t, d.DB, owner, "doomed", "going away")

	require.Equal(t, http.StatusOK, deleteRequest(t, d, owner.ID, video.ID).Code)

	req := httptest.NewRequest("GET", "/api/videos/x", nil)
	c, w := newTestContext(t, req)
	c.Params = gin.Params{{Key: "videoId", Value: video.ID}}
	VideoFetch(c, d)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVideoDelete_NotOwned(t *testing.T) {
	d, up := setupDeps(t)

	owner := seedUser(t, d.DB, "Owner", "owner")
	stranger := seedUser(t, d.DB, "Stranger", "stranger")
	video := seedVideo(t, d.DB, owner, "safe", "still here")

	w := deleteRequest(t, d, stranger.ID, video.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	require.NoError(t, d.DB.Model(model.Video{}).Where("id = ?", video.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.Empty(t, up.deleted)
}

func TestVideoDelete_BadID(t *testing.T) {
	d, _ := setupDeps(t)
	owner := seedUser(t, d.DB, "Owner", "owner")

	w := deleteRequest(t, d, owner.ID, "not-a-real-id")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
