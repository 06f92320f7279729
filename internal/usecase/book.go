package usecase

import (
	"context"

	"libraryapi/internal/entity"
)

// CategoryCount is one row of the category aggregation.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type BookRepository interface {
	List(ctx context.Context) ([]entity.Book, error)
	ListAvailable(ctx context.Context) ([]entity.Book, error)
	GetByID(ctx context.Context, id int64) (entity.Book, error)
	Categories(ctx context.Context) ([]CategoryCount, error)

	Create(ctx context.Context, b *entity.Book) error

	// Update rewrites the catalog fields. Changing TotalCopies adjusts
	// AvailableCopies inside the same per-book critical section the loan
	// ledger uses; a total below the outstanding loan count is rejected
	// with ErrBookHasOutstandingLoans.
	Update(ctx context.Context, b *entity.Book) error

	// Delete refuses to remove a book that outstanding loans still
	// reference (ErrBookHasOutstandingLoans).
	Delete(ctx context.Context, id int64) error
}
