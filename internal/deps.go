package internal

import (
	"vidtube/video-api/aws"
	"vidtube/video-api/internal/service"
	"vidtube/video-api/pkg/security"

	"gorm.io/gorm"
)

type Deps struct {
	DB       *gorm.DB
	Argon    *security.ArgonHash
	S3       *aws.S3Client
	Uploader service.Uploader
}
