package video

import (
	"bytes"
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

func editRequest(t *testing.T, d *internal.Deps, userID, videoID, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("PATCH", "/api/videos/x", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	c, w := newTestContext(t, req)
	c.Set("userID", userID)
	c.Params = gin.Params{{Key: "videoId", Value: videoID}}

	VideoEdit(c, d)
	return w
}

func TestVideoEdit_Success(t *testing.T) {
	d, _ := setupDeps(t)

	owner := seedUser(t, d.DB, "Owner", "owner")
	video := seedVideo(t, d.DB, owner, "old title", "old description")

	w := editRequest(t, d, owner.ID, video.ID, `{"title":"new title","description":"new description"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data model.Video `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "new title", env.Data.Title)
	assert.Equal(t, "new description", env.Data.Description)

	var stored model.Video
	require.NoError(t, d.DB.First(&stored, "id = ?", video.ID).Error)
	assert.Equal(t, "new title", stored.Title)
	assert.Equal(t, "new description", stored.Description)
}

func TestVideoEdit_PartialUpdate(t *testing.T) {
	d, _ := setupDeps(t)

	owner := seedUser(t, d.DB, "Owner", "owner")
	video := seedVideo(t, d.DB, owner, "old title", "old description")

	w := editRequest(t, d, owner.ID, video.ID, `{"title":"just the title"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var stored model.Video
	require.NoError(t, d.DB.First(&stored, "id = ?", video.ID).Error)
	assert.Equal(t, "just the title", stored.Title)
	assert.Equal(t, "old description", stored.Description)
}

func TestVideoEdit_BadInput(t *testing.T) {
	d, _ := setupDeps(t)

	owner := seedUser(t, d.DB, "Owner", "owner")
	video := seedVideo(t, d.DB, owner, "title", "description")

	for name, body := range map[string]string{
		"no options":        `{}`,
		"empty title":       `{"title":"  "}`,
		"empty description": `{"description":""}`,
		"malformed json":    `{"title":`,
	} {
		t.Run(name, func(t *testing.T) {
			w := editRequest(t, d, owner.ID, video.ID, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestVideoEdit_NotOwned(t *testing.T) {
	d, _ := setupDeps(t)

	owner := seedUser(t, d.DB, "Owner", "owner")
	stranger := seedUser(t, d.DB, "Stranger", "stranger")
	video := seedVideo(t, d.DB, owner, "title", "description")

	w := editRequest(t, d, stranger.ID, video.ID, `{"title":"hijacked"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var stored model.Video
	require.NoError(t, d.DB.First(&stored, "id = ?", video.ID).Error)
	assert.Equal(t, "title", stored.Title)
}

func TestVideoEdit_NotFound(t *testing.T) {
	d, _ := setupDeps(t)
	owner := seedUser(t, d.DB, "Owner", "owner")

	w := editRequest(t, d, owner.ID, newID(t), `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
