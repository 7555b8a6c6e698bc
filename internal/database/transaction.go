package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotInitialised = errors.New("database not initialised")
	ErrNotFound       = gorm.ErrRecordNotFound
)

// WithTransaction runs fn in a single transaction on DB. Any error returned
// by fn, or a panic inside it, rolls everything back.
func WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if DB == nil {
		return ErrNotInitialised
	}
	return conn(ctx).Transaction(fn)
}

func conn(ctx context.Context) *gorm.DB {
	db := DB
	if ctx != nil {
		db = db.WithContext(ctx)
	}
	return db
}

// save inserts new rows and updates existing ones without touching their
// creation time.
func save[T any](tx *gorm.DB, value *T, id uint64) error {
	if id == 0 {
		return tx.Create(value).Error
	}
	return tx.Omit("created_at").Save(value).Error
}
