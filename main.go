package main

import (
	"fmt"
	"vidtube/video-api/app"
	"vidtube/video-api/config"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	router, err := app.NewRouter()
	if err != nil {
		panic(err)
	}

	zap.L().Info("Server starting", zap.Int("port", viper.GetInt("host.port")))

	err = router.Run(fmt.Sprintf(":%d", viper.GetInt("host.port")))
	if err != nil {
		panic(err)
	}
}
