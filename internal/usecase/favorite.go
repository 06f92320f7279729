package usecase

import (
	"context"

	"libraryapi/internal/entity"
)

type FavoriteRepository interface {
	// ListByUser returns the user's favorite books as full book records.
	ListByUser(ctx context.Context, userID int64) ([]entity.Book, error)
	// Add fails with ErrAlreadyExists when the pair is already favorited.
	Add(ctx context.Context, userID, bookID int64) error
	Remove(ctx context.Context, userID, bookID int64) error
	IsFavorite(ctx context.Context, userID, bookID int64) (bool, error)
}
