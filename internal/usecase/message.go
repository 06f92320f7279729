package usecase

import (
	"context"

	"libraryapi/internal/entity"
)

type MessageRepository interface {
	// ListByUser returns messages the user sent or received, newest first.
	ListByUser(ctx context.Context, userID int64) ([]entity.Message, error)
	Create(ctx context.Context, m *entity.Message) error
	MarkRead(ctx context.Context, id int64) (entity.Message, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
}
