// Package catalog persists the book catalog.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bookreco-backend/models/books"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrInvalidBook  = errors.New("invalid book")
)

// BookStore is the read-mostly catalog used by the handlers.
type BookStore interface {
	// ListAll returns every book in insertion order.
	ListAll(ctx context.Context) ([]books.Book, error)
	// Get returns ErrBookNotFound for an unknown id.
	Get(ctx context.Context, id uint) (*books.Book, error)
	// SeedIfEmpty inserts records only when the catalog has no books and
	// reports how many were inserted.
	SeedIfEmpty(ctx context.Context, records []books.Book) (int, error)
}

// GormStore is a BookStore backed by any gorm dialect.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the books table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&books.Book{}); err != nil {
		return fmt.Errorf("failed to migrate books: %w", err)
	}
	return nil
}

func (s *GormStore) ListAll(ctx context.Context) ([]books.Book, error) {
	var all []books.Book
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&all).Error; err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return all, nil
}

func (s *GormStore) Get(ctx context.Context, id uint) (*books.Book, error) {
	var book books.Book
	err := s.db.WithContext(ctx).First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("book %d: %w", id, ErrBookNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book %d: %w", id, err)
	}
	return &book, nil
}

func (s *GormStore) SeedIfEmpty(ctx context.Context, records []books.Book) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&books.Book{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	if count > 0 || len(records) == 0 {
		return 0, nil
	}
	for i, b := range records {
		if err := Validate(b); err != nil {
			return 0, fmt.Errorf("seed record %d: %w", i, err)
		}
	}

	// Create fills in IDs, so work on a copy of the caller's slice.
	batch := make([]books.Book, len(records))
	copy(batch, records)
	for i := range batch {
		batch[i].ID = 0
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&batch).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed books: %w", err)
	}
	return len(batch), nil
}

// Validate checks the non-null and size constraints of the books table.
func Validate(b books.Book) error {
	switch {
	case b.Title == "":
		return fmt.Errorf("%w: empty title", ErrInvalidBook)
	case b.Author == "":
		return fmt.Errorf("%w: empty author", ErrInvalidBook)
	case b.Genre == "":
		return fmt.Errorf("%w: empty genre", ErrInvalidBook)
	case b.Description == "":
		return fmt.Errorf("%w: empty description", ErrInvalidBook)
	case len([]rune(b.Title)) > 100:
		return fmt.Errorf("%w: title longer than 100 characters", ErrInvalidBook)
	case len([]rune(b.Author)) > 100:
		return fmt.Errorf("%w: author longer than 100 characters", ErrInvalidBook)
	case len([]rune(b.Genre)) > 50:
		return fmt.Errorf("%w: genre longer than 50 characters", ErrInvalidBook)
	}
	return nil
}
