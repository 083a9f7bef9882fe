package video

import (
	"context"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"
	"vidtube/video-api/internal"
	"vidtube/video-api/internal/model"
	"vidtube/video-api/pkg/response"
	"vidtube/video-api/pkg/validators"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

// VideoPublish creates a new video from a multipart form carrying the
// metadata plus the video and thumbnail files. The two uploads run
// sequentially and a failed thumbnail upload removes the already stored
// video object, so nothing is ever half-persisted.
func VideoPublish(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))

	if title == "" || description == "" {
		response.Fail(c, http.StatusBadRequest, "Title and description are required")
		return
	}

	videoFh, err := c.FormFile("videoFile")
	if err != nil || videoFh == nil {
		response.Fail(c, http.StatusBadRequest, "No video file provided")
		return
	}

	thumbFh, err := c.FormFile("thumbnail")
	if err != nil || thumbFh == nil {
		response.Fail(c, http.StatusBadRequest, "No thumbnail file provided")
		return
	}

	code, videoCT, vf, err := validators.VideoValidator(videoFh)
	if err != nil {
		response.Fail(c, code, err.Error())
		return
	}
	vf.Close()

	code, thumbCT, tf, err := validators.ImageValidator(thumbFh)
	if err != nil {
		response.Fail(c, code, err.Error())
		return
	}
	tf.Close()

	videoTemp, err := saveTemp(c, videoFh, "publish-*.mp4")
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to buffer video file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	thumbTemp, err := saveTemp(c, thumbFh, "thumb-*")
	if err != nil {
		os.Remove(videoTemp)
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to buffer thumbnail file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	// Video first, then thumbnail. The uploader removes the temp files.
	uploaded, err := d.Uploader.Upload(ctx, videoTemp, videoCT)
	if err != nil {
		os.Remove(thumbTemp)
		response.Fail(c, http.StatusInternalServerError, "Failed to store video file")
		zap.L().Error("Failed to upload video", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	thumb, err := d.Uploader.Upload(ctx, thumbTemp, thumbCT)
	if err != nil {
		if delErr := d.Uploader.Delete(context.Background(), uploaded.Key); delErr != nil {
			zap.L().Error("Failed to clean up orphaned video object", zap.Error(delErr), zap.String("key", uploaded.Key))
		}

		response.Fail(c, http.StatusInternalServerError, "Failed to store thumbnail file")
		zap.L().Error("Failed to upload thumbnail", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	videoID, err := gonanoid.Generate(validators.IDAlphabet, validators.IDLength)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to generate video ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	ent := &model.Video{
		ID:          videoID,
		OwnerID:     userID,
		Title:       title,
		Description: description,
		VideoFile:   uploaded.URL,
		Thumbnail:   thumb.URL,
		FileKey:     uploaded.Key,
		ThumbKey:    thumb.Key,
		Duration:    uploaded.Duration,
		IsPublished: false,
		CreatedAt:   time.Now().Unix(),
	}

	if err := d.DB.Create(ent).Error; err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to create video record", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	response.OK(c, ent, "Video published successfully")
}

// saveTemp buffers a multipart file to disk so the uploader can reopen it
func saveTemp(c *gin.Context, fh *multipart.FileHeader, pattern string) (string, error) {
	temp, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	temp.Close()

	if err := c.SaveUploadedFile(fh, temp.Name()); err != nil {
		os.Remove(temp.Name())
		return "", err
	}

	return temp.Name(), nil
}
