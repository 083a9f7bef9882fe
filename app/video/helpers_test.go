package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"vidtube/video-api/internal"
	"vidtube/video-api/internal/model"
	"vidtube/video-api/internal/service"
	"vidtube/video-api/pkg/security"
	"vidtube/video-api/pkg/validators"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Minimal valid file signatures so the mimetype sniffing in the validators
// accepts the test uploads
var (
	mp4Bytes = []byte{
		0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm',
		0x00, 0x00, 0x02, 0x00, 'i', 's', 'o', 'm', 'i', 's', 'o', '2',
		'a', 'v', 'c', '1', 'm', 'p', '4', '1',
	}
	pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d}
)

// stubUploader stands in for the media storage collaborator
type stubUploader struct {
	calls    []string // content types in call order
	failType string   // content type prefix that should fail
	deleted  []string
	duration float64
}

func (s *stubUploader) Upload(_ context.Context, p, contentType string) (*service.UploadResult, error) {
	os.Remove(p)

	if s.failType != "" && strings.HasPrefix(contentType, s.failType) {
		return nil, errors.New("upload rejected")
	}

	s.calls = append(s.calls, contentType)
	key := fmt.Sprintf("obj-%d-%s", len(s.calls), strings.ReplaceAll(contentType, "/", "-"))

	var duration float64
	if strings.HasPrefix(contentType, "video/") {
		duration = s.duration
	}

	return &service.UploadResult{
		Key:      key,
		URL:      "https://cdn.test/" + key,
		Duration: duration,
	}, nil
}

func (s *stubUploader) Delete(_ context.Context, keys ...string) error {
	s.deleted = append(s.deleted, keys...)
	return nil
}

func setupDeps(t *testing.T) (*internal.Deps, *stubUploader) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	viper.Set("upload.max_size", int64(50<<20))
	viper.Set("upload.max_image_size", int64(10<<20))
	viper.Set("list.default_limit", 10)
	viper.Set("list.max_limit", 100)
	viper.Set("list.default_sort", "created_at")

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.User{}, model.Video{}, model.Like{}))

	up := &stubUploader{duration: 42.5}

	return &internal.Deps{
		DB:       db,
		Argon:    security.New(),
		Uploader: up,
	}, up
}

func newTestContext(t *testing.T, req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("requestID", "test-request")

	return c, w
}

func newID(t *testing.T) string {
	t.Helper()

	id, err := gonanoid.Generate(validators.IDAlphabet, validators.IDLength)
	require.NoError(t, err)
	return id
}

func seedUser(t *testing.T, db *gorm.DB, fullName, username string) *model.User {
	t.Helper()

	u := &model.User{
		ID:           newID(t),
		FullName:     fullName,
		Username:     username,
		Email:        username + "@example.com",
		Avatar:       "https://cdn.test/" + username + ".png",
		PasswordHash: "x",
		CreatedAt:    time.Now().Unix(),
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedVideo(t *testing.T, db *gorm.DB, owner *model.User, title, description string) *model.Video {
	t.Helper()

	v := &model.Video{
		ID:          newID(t),
		OwnerID:     owner.ID,
		Title:       title,
		Description: description,
		VideoFile:   "https://cdn.test/" + title + ".mp4",
		Thumbnail:   "https://cdn.test/" + title + ".webp",
		FileKey:     title + ".mp4",
		ThumbKey:    title + ".webp",
		Duration:    10,
		CreatedAt:   time.Now().Unix(),
	}
	require.NoError(t, db.Create(v).Error)
	return v
}

func seedLike(t *testing.T, db *gorm.DB, userID, videoID string) {
	t.Helper()

	require.NoError(t, db.Create(&model.Like{
		VideoID:   videoID,
		UserID:    userID,
		CreatedAt: time.Now().Unix(),
	}).Error)
}

// multipartBody builds a form with string fields and files, each file given
// as {field, filename, contentType, content}
func multipartBody(t *testing.T, fields map[string]string, files ...[4]any) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}

	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f[0].(string), f[1].(string)))
		h.Set("Content-Type", f[2].(string))

		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write(f[3].([]byte))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}
