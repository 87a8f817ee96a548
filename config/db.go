package config

import (
	"fmt"
	"time"

	"github.com/aviroopjana/versa/global"
	"github.com/aviroopjana/versa/log"
	"github.com/aviroopjana/versa/models"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func initDB() {
	dsn := AppConfig.Database.Dsn
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.L().Fatal("DataBase connection failed",
			zap.Error(err),
			zap.String("dsn", dsn),
		)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.L().Error("DataBase connection failed ,got error:", zap.Error(err))
	}
	sqlDB.SetMaxIdleConns(AppConfig.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(AppConfig.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(AppConfig.Database.ConnMaxLifetimeHours) * time.Hour) // 连接到期后断开重建
	global.DB = db
	fmt.Println("1. DataBase connection success!")
}

func runMigrations() {
	if err := global.DB.AutoMigrate(
		&models.Users{},
		&models.ApiKey{},
		&models.UserSettings{},
		&models.TransformationHistory{},
		&models.PDFDocument{},
	); err != nil {
		log.L().Error("DataBase migration failed ,got error:", zap.Error(err))
	}
}
