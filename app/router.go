// Package app wires the endpoints, middleware and collaborators together
package app

import (
	"fmt"
	"time"
	"vidtube/video-api/app/root"
	"vidtube/video-api/app/user"
	"vidtube/video-api/app/video"
	"vidtube/video-api/aws"
	"vidtube/video-api/db"
	"vidtube/video-api/internal"
	"vidtube/video-api/internal/service"
	"vidtube/video-api/pkg/middleware"
	"vidtube/video-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

func NewRouter() (*gin.Engine, error) {
	d := &internal.Deps{}

	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	d.DB = database

	makeLogger()

	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors_origins"),
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("requestID", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	jwt := middleware.NewJWTMiddleware(database)
	rateLimit := viper.GetInt("security.rate_limit")
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
		CleanupInterval:   time.Second,
	})

	maxUploadSize := viper.GetInt64("upload.max_size")
	maxImageSize := viper.GetInt64("upload.max_image_size")

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/validate		-> Validates a JWT token
		m.GET("/validate", jwt, root.Validate)
	}

	u := m.Group("/users")
	{
		// POST /api/users 		-> Registers a new user
		u.POST("", middleware.BodySizeLimiter(maxImageSize+1<<20), func(c *gin.Context) { user.UserRegister(c, d) })

		// POST /api/users/login 	-> Logs in a user and returns a JWT cookie
		u.POST("/login", middleware.BodySizeLimiter(1<<20), func(c *gin.Context) { user.UserLogin(c, d) })

		// GET /api/users		-> Returns the requester's profile
		u.GET("", jwt, func(c *gin.Context) { user.UserFetch(c, d) })
	}

	v := m.Group("/videos")
	{
		// GET /api/videos		-> Lists videos with search, sort and pagination
		v.GET("", cacheFor(15), func(c *gin.Context) { video.VideoList(c, d) })

		// GET /api/videos/:videoId	-> Returns one video with owner and like count
		v.GET("/:videoId", func(c *gin.Context) { video.VideoFetch(c, d) })

		// POST /api/videos		-> Publishes a new video
		v.POST("", jwt, middleware.BodySizeLimiter(maxUploadSize), func(c *gin.Context) { video.VideoPublish(c, d) })

		// PATCH /api/videos/:videoId	-> Updates title/description
		v.PATCH("/:videoId", jwt, middleware.BodySizeLimiter(1<<20), func(c *gin.Context) { video.VideoEdit(c, d) })

		// PATCH /api/videos/:videoId/thumbnail -> Replaces the thumbnail
		v.PATCH("/:videoId/thumbnail", jwt, middleware.BodySizeLimiter(maxImageSize+1<<20), func(c *gin.Context) { video.VideoThumbnail(c, d) })

		// PATCH /api/videos/:videoId/toggle	-> Flips the publish flag
		v.PATCH("/:videoId/toggle", jwt, func(c *gin.Context) { video.VideoToggle(c, d) })

		// POST /api/videos/:videoId/like	-> Toggles the requester's like
		v.POST("/:videoId/like", jwt, func(c *gin.Context) { video.VideoLike(c, d) })

		// DELETE /api/videos/:videoId	-> Deletes a video owned by the requester
		v.DELETE("/:videoId", jwt, func(c *gin.Context) { video.VideoDelete(c, d) })
	}

	d.Argon = security.New()

	s3, err := aws.NewS3()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
	}

	d.S3 = s3
	d.Uploader = service.NewUploader(s3)

	return router, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
