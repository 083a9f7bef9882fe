package validators

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
)

var (
	ErrFileTooLarge        = errors.New("file too large")
	ErrFileNameTooLong     = errors.New("file name is too long")
	ErrFileTypeUnsupported = errors.New("unsupported file type")
	ErrNoFile              = errors.New("no file provided")
)

const maxFileNameSize = 255

var imageTypes = []string{"image/webp", "image/jpeg", "image/png"}

// VideoValidator checks an uploaded video file before anything is done with
// it. On success the detected content type is returned alongside an open
// handle positioned at the start of the file.
func VideoValidator(fh *multipart.FileHeader) (int, string, multipart.File, error) {
	return fileValidator(fh, "video/", []string{"video/mp4"}, viper.GetInt64("upload.max_size"))
}

// ImageValidator does the same for thumbnail and avatar uploads
func ImageValidator(fh *multipart.FileHeader) (int, string, multipart.File, error) {
	return fileValidator(fh, "image/", imageTypes, viper.GetInt64("upload.max_image_size"))
}

func fileValidator(fh *multipart.FileHeader, prefix string, allowed []string, maxFileSize int64) (int, string, multipart.File, error) {
	if fh == nil {
		return http.StatusBadRequest, "", nil, ErrNoFile
	}

	// Check headers first which is easy to spoof, but faster for legit clients
	ct := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, prefix) {
		return http.StatusBadRequest, "", nil, ErrFileTypeUnsupported
	}

	if len(fh.Filename) > maxFileNameSize {
		return http.StatusBadRequest, "", nil, ErrFileNameTooLong
	}

	if fh.Size > maxFileSize {
		return http.StatusRequestEntityTooLarge, "", nil, ErrFileTooLarge
	}

	// And now do the checks on the actual file to avoid
	// malicious clients
	f, err := fh.Open()
	if err != nil {
		return http.StatusInternalServerError, "", nil, err
	}

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return http.StatusInternalServerError, "", nil, err
	}

	var detected string
	for _, t := range allowed {
		if mime.Is(t) {
			detected = t
			break
		}
	}

	if detected == "" {
		f.Close()
		return http.StatusBadRequest, "", nil, ErrFileTypeUnsupported
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return http.StatusInternalServerError, "", nil, err
	}

	return 0, detected, f, nil
}
