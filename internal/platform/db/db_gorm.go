// Package db opens the application database connection.
package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "markpad_backend/internal/feature/auth/domain/entity"
	notesentity "markpad_backend/internal/feature/notes/domain/entity"
)

// Open connects to PostgreSQL with the given DSN, retrying until the
// database accepts connections or the deadline passes. When migrate is
// true the schema is auto-migrated.
func Open(dsn string, migrate bool) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if migrate {
		if err := db.AutoMigrate(
			&authentity.User{},
			&authentity.PasswordReset{},
			&notesentity.Note{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
