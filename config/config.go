// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDrivers   = []string{"sqlite", "postgres"}
	validSortBy    = []string{"created_at", "title", "duration", "views"}
)

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.cors_origins", "host_cors_origins")

	v.BindEnv("database.driver", "database_driver")
	v.BindEnv("database.dsn", "database_dsn")

	v.BindEnv("security.jwt_secret", "security_jwt_secret")
	v.BindEnv("security.rate_limit", "security_rate_limit")

	v.BindEnv("upload.max_size", "upload_max_size")
	v.BindEnv("upload.max_image_size", "upload_max_image_size")

	v.BindEnv("aws.access_key", "aws_access_key")
	v.BindEnv("aws.secret_access_key", "aws_secret_access_key")
	v.BindEnv("aws.region", "aws_region")
	v.BindEnv("aws.bucket", "aws_bucket")
	v.BindEnv("aws.cdn_url", "aws_cdn_url")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors_origins", []string{"http://localhost:5173"})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "database.db")

	v.SetDefault("security.rate_limit", 25)

	v.SetDefault("upload.max_size", 200)
	v.SetDefault("upload.max_image_size", 10)

	v.SetDefault("list.default_limit", 10)
	v.SetDefault("list.max_limit", 100)
	v.SetDefault("list.default_sort", "created_at")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDrivers, v.GetString("database.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("database.dsn") == "" {
		return errors.New("database dsn can't be empty")
	}

	if v.GetString("security.jwt_secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if v.GetInt("security.rate_limit") <= 0 {
		return errors.New("rate limit must be bigger than 0")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetInt("upload.max_image_size") <= 0 {
		return errors.New("upload.max_image_size must be bigger than 0")
	}

	if !slices.Contains(validSortBy, v.GetString("list.default_sort")) {
		return errors.New("invalid default sort field provided")
	}

	if v.GetString("aws.access_key") == "" {
		return errors.New("account access key can't be empty")
	}
	if v.GetString("aws.secret_access_key") == "" {
		return errors.New("secret access key can't be empty")
	}
	if v.GetString("aws.region") == "" {
		return errors.New("region can't be empty")
	}
	if v.GetString("aws.bucket") == "" {
		return errors.New("bucket can't be empty")
	}
	if v.GetString("aws.cdn_url") == "" {
		zap.L().Warn("No aws.cdn_url specified, object URLs will point directly at the bucket")
	}

	// Sizes are configured in MB
	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	v.Set("upload.max_image_size", v.GetInt64("upload.max_image_size")<<20)
	return nil
}
