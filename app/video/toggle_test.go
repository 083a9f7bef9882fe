package video

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"vidtube/video-api/internal"
	"vidtube/video-api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toggleRequest(t *testing.T, d *internal.Deps, userID, videoID string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("PATCH", "/api/videos/x/toggle", nil)

	c, w := newTestContext(t, req)
	c.Set("userID", userID)
	c.Params = gin.Params{{Key: "videoId", Value: videoID}}

	VideoToggle(c, d)
	return w
}

func TestVideoToggle_Flips(t *testing.T) {
	d, _ := setupDeps(t)

	owner := seedUser(t, d.DB, "Owner", "owner")
	video := seedVideo(t, d.DB, owner, "title", "description")

	w := toggleRequest(t, d, owner.ID, video.ID)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data struct {
			IsPublished bool `json:"isPublished"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Data.IsPublished)

	var stored model.Video
	require.NoError(t, d.DB.First(&stored, "id = ?", video.ID).Error)
	assert.True(t, stored.IsPublished)
}

func TestVideoToggle_TwiceRestoresState(t *testing.T) {
	d, _ := setupDeps(t)

	owner := seedUser(t, d.DB, "Owner", "owner")
	video := seedVideo(t, d.DB, owner, "title", "description")

	require.Equal(t, http.StatusOK, toggleRequest(t, d, owner.ID, video.ID).Code)
	require.Equal(t, http.StatusOK, toggleRequest(t, d, owner.ID, video.ID).Code)

	var stored model.Video
	require.NoError(t, d.DB.First(&stored, "id = ?", video.ID).Error)
	assert.False(t, stored.IsPublished)
}

func TestVideoToggle_NotOwner(t *testing.T) {
	d, _ := setupDeps(t)

	owner := seedUser(t, d.DB, "Owner", "owner")
	stranger := seedUser(t, d.DB, "Stranger", "stranger")
	video := seedVideo(t, d.DB, owner, "title", "description")

	w := toggleRequest(t, d, stranger.ID, video.ID)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var stored model.Video
	require.NoError(t, d.DB.First(&stored, "id = ?", video.ID).Error)
	assert.False(t, stored.IsPublished)
}

func TestVideoToggle_BadID(t *testing.T) {
	d, _ := setupDeps(t)
	owner := seedUser(t, d.DB, "Owner", "owner")

	for _, id := range []string{"", "short", "has spaces in it", "0123456789abcdef"} {
		w := toggleRequest(t, d, owner.ID, id)
		assert.Equal(t, http.StatusBadRequest, w.Code, "id %q", id)
	}
}

func TestVideoToggle_NotFound(t *testing.T) {
	d, _ := setupDeps(t)
	owner := seedUser(t, d.DB, "Owner", "owner")

	w := toggleRequest(t, d, owner.ID, newID(t))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
