package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	a "vidtube/video-api/aws"
	"vidtube/video-api/pkg/util"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const minMultipartSize = 12 << 20

// UploadResult is what the media storage collaborator reports back for a
// stored object. Duration is only probed for video content.
type UploadResult struct {
	Key      string
	URL      string
	Duration float64
}

// Uploader is the media storage collaborator boundary. Handlers only ever
// see this interface so tests can swap the S3 implementation out.
type Uploader interface {
	Upload(ctx context.Context, p, contentType string) (*UploadResult, error)
	Delete(ctx context.Context, keys ...string) error
}

type S3Uploader struct {
	S3 *a.S3Client
}

func NewUploader(s *a.S3Client) *S3Uploader {
	return &S3Uploader{S3: s}
}

var extByType = map[string]string{
	"video/mp4":  ".mp4",
	"image/webp": ".webp",
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// Upload stores the file at p under a random key and returns its durable
// URL. The local file is removed afterwards no matter the outcome.
func (u *S3Uploader) Upload(ctx context.Context, p, contentType string) (*UploadResult, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open file for upload, %w", err)
	}
	defer os.Remove(p)
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file for upload, %w", err)
	}

	ext, ok := extByType[contentType]
	if !ok {
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	var duration float64
	if strings.HasPrefix(contentType, "video/") {
		duration, err = GetDuration(p)
		if err != nil {
			return nil, fmt.Errorf("failed to get video duration, %w", err)
		}
	}

	key := util.RandStr(10) + ext

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithDeadline(ctx, time.Now().Add(time.Minute))
	defer cancel()

	objectInput := &s3.PutObjectInput{
		Bucket:        u.S3.Bucket,
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(stat.Size()),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	}

	// Large videos go through the multipart manager, everything else is a
	// single PutObject
	if stat.Size() > minMultipartSize {
		uploader := manager.NewUploader(u.S3.C, func(u *manager.Uploader) {
			u.Concurrency = 5
			u.PartSize = 6 << 20
		})

		_, err = uploader.Upload(ctx, objectInput)
	} else {
		_, err = u.S3.C.PutObject(ctx, objectInput)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upload object to s3, %w", err)
	}

	zap.L().Debug("Uploaded object", zap.String("key", key), zap.Int64("size", stat.Size()))

	return &UploadResult{
		Key:      key,
		URL:      objectURL(key),
		Duration: duration,
	}, nil
}

// Delete removes objects from the bucket. Used for orphan cleanup after a
// partial publish and when a video is deleted.
func (u *S3Uploader) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	objects := make([]types.ObjectIdentifier, 0, len(keys))
	for _, k := range keys {
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(k)})
	}

	resp, err := u.S3.C.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: u.S3.Bucket,
		Delete: &types.Delete{Objects: objects},
	})
	if err != nil {
		return fmt.Errorf("failed to delete objects from s3, %w", err)
	}

	for _, v := range resp.Deleted {
		zap.L().Debug("Deleted object", zap.String("key", *v.Key))
	}

	return nil
}

func objectURL(key string) string {
	if cdn := viper.GetString("aws.cdn_url"); cdn != "" {
		return strings.TrimSuffix(cdn, "/") + "/" + key
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		viper.GetString("aws.bucket"), viper.GetString("aws.region"), key)
}
