package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mdzoubir/eventconnect-backend/internal/domain"
)

// Store is the gorm-backed implementation of the service repository
// interfaces. All methods honor a transaction carried in the context, so a
// service-level WithTx spans every call made inside it.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

type txKey struct{}

// WithTx runs fn inside a database transaction. Nested calls join the
// transaction already carried by the context instead of opening a new one.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return s.db.WithContext(ctx)
}

// notFound maps gorm's record-not-found onto the domain sentinel.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// duplicate maps a unique-constraint violation onto the given domain
// sentinel, passing other errors through. Relies on gorm's TranslateError.
func duplicate(err, sentinel error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return sentinel
	}
	return err
}
