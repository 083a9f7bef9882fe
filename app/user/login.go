package user

import (
	"errors"
	"net/http"
	"time"
	"vidtube/video-api/internal"
	"vidtube/video-api/internal/model"
	"vidtube/video-api/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func UserLogin(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if data.Email == "" {
		response.Fail(c, http.StatusBadRequest, "Email field can't be empty")
		return
	}

	if data.Password == "" {
		response.Fail(c, http.StatusBadRequest, "Password field can't be empty")
		return
	}

	var user model.User

	if err := d.DB.Where("email = ?", data.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "User not found")
			return
		}

		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	ok, err := d.Argon.VerifyPasswd(data.Password, user.PasswordHash)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	authToken, err := makeToken(&jwt.MapClaims{
		"user_id": user.ID,
		"type":    "auth",
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour * 24 * 30).Unix(),
	})
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to generate JWT auth token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.SetCookie("auth_token", authToken, 60*60*24*30, "/", "", false, true)
	response.OK(c, gin.H{"userID": user.ID, "username": user.Username}, "Logged in successfully")
}

func makeToken(c *jwt.MapClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(viper.GetString("security.jwt_secret")))
}
