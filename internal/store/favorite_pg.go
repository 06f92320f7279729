package store

import (
	"context"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FavoritePG struct {
	db *pgxpool.Pool
}

func NewFavoritePG(db *pgxpool.Pool) *FavoritePG {
	return &FavoritePG{db: db}
}

func (r *FavoritePG) ListByUser(ctx context.Context, userID int64) ([]entity.Book, error) {
	const query = `
	SELECT b.id, b.title, b.author, b.description, b.cover_image, b.isbn,
	       b.publish_year, b.category, b.available, b.total_copies, b.available_copies, b.added_at
	FROM favorites f
	JOIN books b ON b.id = f.book_id
	WHERE f.user_id = $1
	ORDER BY f.created_at DESC, f.id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []entity.Book
	for rows.Next() {
		var b entity.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *FavoritePG) Add(ctx context.Context, userID, bookID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO favorites (user_id, book_id) VALUES ($1, $2)`, userID, bookID)
	if isUniqueViolation(err) {
		return usecase.ErrAlreadyExists
	}
	return err
}

func (r *FavoritePG) Remove(ctx context.Context, userID, bookID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND book_id = $2`, userID, bookID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *FavoritePG) IsFavorite(ctx context.Context, userID, bookID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND book_id = $2)`,
		userID, bookID,
	).Scan(&exists)
	return exists, err
}
