package database

import (
	"cinema_scheduler/config"
	"cinema_scheduler/model"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// An address can be reused once its theater is soft deleted, so uniqueness only covers live rows.
var indexes = []string{
	`DROP INDEX IF EXISTS idx_theaters_address_id`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_theaters_live_address ON theaters (address_id) WHERE deleted_at IS NULL`,
}

func DSN(s config.Settings) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		s.DBHost, s.DBPort, s.DBUser, s.DBPassword, s.DBName)
}

// ConnectDB opens the postgres connection, migrates the schema and stores the handle in DB.
func ConnectDB(s config.Settings, log *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if s.Env == "development" {
		level = gormlogger.Info
	}
	db, err := gorm.Open(postgres.Open(DSN(s)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Info("connection opened to database", zap.String("host", s.DBHost), zap.String("name", s.DBName))

	err = db.AutoMigrate(
		&model.Account{},
		&model.Address{},
		&model.Theater{},
		&model.Movie{},
		&model.Session{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return nil, fmt.Errorf("migrate indexes: %w", err)
		}
	}
	log.Info("database migrated")

	DB = db
	return db, nil
}
