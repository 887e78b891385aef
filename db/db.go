package db

import (
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gitlab.com/system76/power-management-service/internal/config"
	"gitlab.com/system76/power-management-service/models"
)

var DB *gorm.DB

func ConnectDatabase() {
	path := filepath.Join(config.GetConfig().General.DataDir, "power.db")
	database, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		zlog.Sugar().Panicf("failed to connect to database at %s: %v", path, err)
	}

	database.AutoMigrate(&models.GraphicsPreference{})
	database.AutoMigrate(&models.PowerProfileRecord{})
	database.AutoMigrate(&models.PowerEvent{})

	DB = database
}
