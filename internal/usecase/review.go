package usecase

import (
	"context"

	"libraryapi/internal/entity"
)

type ReviewRepository interface {
	// ListByBook returns the book's reviews joined with the reviewer's
	// username, newest first.
	ListByBook(ctx context.Context, bookID int64) ([]entity.Review, error)
	Create(ctx context.Context, rv *entity.Review) error
	Like(ctx context.Context, id int64) (entity.Review, error)
	Dislike(ctx context.Context, id int64) (entity.Review, error)
	Delete(ctx context.Context, id int64) error
}
