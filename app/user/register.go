// Package user contains the handlers for the user endpoints
package user

import (
	"context"
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

// UserRegister creates a new account from a multipart form. The avatar file
// is optional and goes through the same media storage as video thumbnails.
func UserRegister(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	fullName := strings.TrimSpace(c.PostForm("fullName"))
	username := strings.TrimSpace(strings.ToLower(c.PostForm("username")))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if fullName == "" || username == "" {
		response.Fail(c, http.StatusBadRequest, "Full name and username are required")
		return
	}

	if err := validators.EmailValidator(email); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := validators.PasswordValidator(password); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var taken bool
	err := d.DB.
		Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ? OR username = ?", email, username).
		Find(&taken).
		Error
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to check if user is registered", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if taken {
		response.Fail(c, http.StatusConflict, "This email or username is already registered")
		return
	}

	var avatarURL string

	if avatarFh, err := c.FormFile("avatar"); err == nil && avatarFh != nil {
		code, avatarCT, af, err := validators.ImageValidator(avatarFh)
		if err != nil {
			response.Fail(c, code, err.Error())
			return
		}
		af.Close()

		temp, err := os.CreateTemp("", "avatar-*")
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Internal server error")
			zap.L().Error("Failed to create temporary file", zap.Error(err), zap.String("requestID", requestID))
			return
		}
		temp.Close()

		if err := c.SaveUploadedFile(avatarFh, temp.Name()); err != nil {
			os.Remove(temp.Name())
			response.Fail(c, http.StatusInternalServerError, "Internal server error")
			zap.L().Error("Failed to buffer avatar file", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Minute)
		defer cancel()

		uploaded, err := d.Uploader.Upload(ctx, temp.Name(), avatarCT)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to store avatar file")
			zap.L().Error("Failed to upload avatar", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		avatarURL = uploaded.URL
	}

	hash, err := d.Argon.GenerateFromPassword(password)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	userID, err := gonanoid.Generate(validators.IDAlphabet, validators.IDLength)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to generate user ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	ent := &model.User{
		ID:           userID,
		FullName:     fullName,
		Username:     username,
		Email:        email,
		Avatar:       avatarURL,
		PasswordHash: hash,
		CreatedAt:    time.Now().Unix(),
	}

	if err := d.DB.Create(ent).Error; err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	response.OK(c, ent, "User registered successfully")
}
