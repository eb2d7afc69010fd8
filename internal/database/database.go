// Package database is the persistence layer: a thin store API over
// gorm so handlers never build queries themselves.
package database

import (
	"context"
	"fmt"

	"github.com/ghinaaj20-lang/luna-project/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB wraps the gorm handle with the application's store methods.
type DB struct {
	gorm *gorm.DB
}

// Open connects to PostgreSQL. TranslateError is on so uniqueness
// violations surface as gorm.ErrDuplicatedKey regardless of driver.
func Open(dsn string) (*DB, error) {
	g, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return &DB{gorm: g}, nil
}

// New wraps an already-open gorm handle. Tests use this with an
// in-memory SQLite database.
func New(g *gorm.DB) *DB {
	return &DB{gorm: g}
}

// Migrate creates or updates the schema for every model.
func (d *DB) Migrate() error {
	return d.gorm.AutoMigrate(models.All()...)
}

func (d *DB) conn(ctx context.Context) *gorm.DB {
	return d.gorm.WithContext(ctx)
}
