package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"idorlab/internal/model"
)

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the users, projects and notes tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Project{}, &model.Note{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Reset drops every table, children first, and migrates again.
func Reset(db *gorm.DB) error {
	for _, table := range []interface{}{&model.Note{}, &model.Project{}, &model.User{}} {
		if err := db.Migrator().DropTable(table); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return Migrate(db)
}
