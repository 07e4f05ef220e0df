package database

import (
	"cyberhub_backend/internal/config"
	"cyberhub_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.UserSession{},
		&model.Student{},
		&model.Theme{},
		&model.Exercise{},
		&model.Question{},
		&model.Submission{},
		&model.ExerciseResult{},
		&model.ScoreboardEntry{},
		&model.ActivityLog{},
		&model.ContainerTemplate{},
		&model.LabSession{},
	)
	if err != nil {
		return err
	}

	log.Println("Database migration completed")

	seedDefaults(db)
	return nil
}

// seedDefaults inserts the two root themes on an empty database so the public
// catalog is never a blank page.
func seedDefaults(db *gorm.DB) {
	var count int64
	db.Model(&model.Theme{}).Count(&count)
	if count == 0 {
		defaultThemes := []model.Theme{
			{Name: "Offensive Security", Description: "Attack techniques, exploitation and red teaming", Icon: "⚔️", Color: "#e74c3c", TeamType: model.TeamRed, OrderIndex: 1, IsActive: true},
			{Name: "Defensive Security", Description: "Detection, hardening and incident response", Icon: "🛡️", Color: "#3498db", TeamType: model.TeamBlue, OrderIndex: 2, IsActive: true},
		}
		for _, t := range defaultThemes {
			db.Create(&t)
		}
	}
}
