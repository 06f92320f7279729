package store

import (
	"context"
	"errors"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MessagePG struct {
	db *pgxpool.Pool
}

func NewMessagePG(db *pgxpool.Pool) *MessagePG {
	return &MessagePG{db: db}
}

const messageColumns = `id, sender_id, receiver_id, content, read, created_at`

func (r *MessagePG) ListByUser(ctx context.Context, userID int64) ([]entity.Message, error) {
	const query = `
	SELECT ` + messageColumns + ` FROM messages
	WHERE sender_id = $1 OR receiver_id = $1
	ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *MessagePG) Create(ctx context.Context, m *entity.Message) error {
	const query = `
	INSERT INTO messages (sender_id, receiver_id, content)
	VALUES ($1, $2, $3)
	RETURNING id, read, created_at
	`
	return r.db.QueryRow(ctx, query, m.SenderID, m.ReceiverID, m.Content).
		Scan(&m.ID, &m.Read, &m.CreatedAt)
}

func (r *MessagePG) MarkRead(ctx context.Context, id int64) (entity.Message, error) {
	const query = `
	UPDATE messages SET read = TRUE WHERE id = $1
	RETURNING ` + messageColumns + `
	`
	var m entity.Message
	err := r.db.QueryRow(ctx, query, id).
		Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Read, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Message{}, usecase.ErrNotFound
		}
		return entity.Message{}, err
	}
	return m, nil
}

func (r *MessagePG) UnreadCount(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND NOT read`, userID,
	).Scan(&count)
	return count, err
}
