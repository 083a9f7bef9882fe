// Package db contains the database connection setup
package db

import (
	"fmt"
	"vidtube/video-api/internal/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New() (*gorm.DB, error) {
	var dial gorm.Dialector

	switch viper.GetString("database.driver") {
	case "postgres":
		dial = postgres.Open(viper.GetString("database.dsn"))
	default:
		dial = sqlite.Open(viper.GetString("database.dsn"))
	}

	db, err := gorm.Open(dial)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	err = db.AutoMigrate(model.User{}, model.Video{}, model.Like{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
