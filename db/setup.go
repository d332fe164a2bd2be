package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/studyhelper-dev/studyhelper/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase opens the global connection. Postgres is the production
// driver; sqlite backs local development and tests. SQLite DSNs should enable
// the foreign-keys pragma so cascade deletes behave the same on both drivers,
// e.g. "file:studyhelper.db?_pragma=foreign_keys(1)".
func ConnectDatabase(driver string, dsn string) error {
	var dialector gorm.Dialector

	switch driver {
	case "postgres", "":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return fmt.Errorf("unsupported database driver: %s", driver)
	}

	var err error

	DB, err = gorm.Open(dialector, &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

// MigrateDatabase creates missing tables in dependency order, so foreign key
// targets exist before the tables that reference them.
func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Course{},
		&models.Note{},
		&models.Task{},
		&models.NoteTaskLink{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
