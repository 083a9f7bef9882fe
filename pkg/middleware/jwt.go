package middleware

import (
	"fmt"
	"net/http"
	"time"
	"vidtube/video-api/internal/model"
	"vidtube/video-api/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewJWTMiddleware validates the auth_token cookie and attaches the
// requester's userID to the context. Every operation that needs an owner
// identity reads it from there, never from anything request-global.
func NewJWTMiddleware(d *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		tokenStr, err := c.Cookie("auth_token")
		if err != nil {
			if err == http.ErrNoCookie {
				response.AbortFail(c, http.StatusUnauthorized, "No auth_token cookie")
				return
			}

			response.AbortFail(c, http.StatusUnauthorized, "Authorization token invalid")
			zap.L().Error("Failed to get token cookie", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
			}

			return []byte(viper.GetString("security.jwt_secret")), nil
		})
		if err != nil || !token.Valid {
			response.AbortFail(c, http.StatusUnauthorized, "Authorization token invalid")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.AbortFail(c, http.StatusUnauthorized, "Authorization token invalid")
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok {
			response.AbortFail(c, http.StatusUnauthorized, "Authorization token invalid")
			return
		}

		exp, ok := claims["exp"].(float64)
		if !ok || time.Now().Unix() >= int64(exp) {
			response.AbortFail(c, http.StatusUnauthorized, "Authorization token expired. Please log in again")
			return
		}

		// The token may outlive the account it was issued for
		var found bool
		err = d.Model(model.User{}).
			Select("count(*) > 0").
			Where("id = ?", userID).
			Find(&found).
			Error
		if err != nil {
			response.AbortFail(c, http.StatusInternalServerError, "Internal server error")
			zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if !found {
			response.AbortFail(c, http.StatusUnauthorized, "User not found")
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
