package store

import (
	"context"
	"errors"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewPG struct {
	db *pgxpool.Pool
}

func NewReviewPG(db *pgxpool.Pool) *ReviewPG {
	return &ReviewPG{db: db}
}

const reviewViewSQL = `
	SELECT r.id, r.book_id, r.user_id, r.rating, r.comment, r.likes, r.dislikes,
	       r.created_at, u.username
	FROM reviews r
	JOIN users u ON u.id = r.user_id
`

func (r *ReviewPG) ListByBook(ctx context.Context, bookID int64) ([]entity.Review, error) {
	rows, err := r.db.Query(ctx,
		reviewViewSQL+`WHERE r.book_id = $1 ORDER BY r.created_at DESC, r.id DESC`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []entity.Review
	for rows.Next() {
		var rv entity.Review
		if err := scanReview(rows, &rv); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

func scanReview(row pgx.Row, rv *entity.Review) error {
	return row.Scan(
		&rv.ID, &rv.BookID, &rv.UserID, &rv.Rating, &rv.Comment,
		&rv.Likes, &rv.Dislikes, &rv.CreatedAt, &rv.Username,
	)
}

func (r *ReviewPG) Create(ctx context.Context, rv *entity.Review) error {
	const query = `
	INSERT INTO reviews (book_id, user_id, rating, comment)
	VALUES ($1, $2, $3, $4)
	RETURNING id, likes, dislikes, created_at
	`
	return r.db.QueryRow(ctx, query, rv.BookID, rv.UserID, rv.Rating, rv.Comment).
		Scan(&rv.ID, &rv.Likes, &rv.Dislikes, &rv.CreatedAt)
}

func (r *ReviewPG) Like(ctx context.Context, id int64) (entity.Review, error) {
	return r.bump(ctx, `likes`, id)
}

func (r *ReviewPG) Dislike(ctx context.Context, id int64) (entity.Review, error) {
	return r.bump(ctx, `dislikes`, id)
}

// bump increments a counter column in one statement; concurrent votes on
// the same review cannot lose updates.
func (r *ReviewPG) bump(ctx context.Context, column string, id int64) (entity.Review, error) {
	query := `
	WITH bumped AS (
		UPDATE reviews SET ` + column + ` = ` + column + ` + 1
		WHERE id = $1
		RETURNING *
	)
	SELECT b.id, b.book_id, b.user_id, b.rating, b.comment, b.likes, b.dislikes,
	       b.created_at, u.username
	FROM bumped b
	JOIN users u ON u.id = b.user_id
	`
	var rv entity.Review
	if err := scanReview(r.db.QueryRow(ctx, query, id), &rv); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Review{}, usecase.ErrNotFound
		}
		return entity.Review{}, err
	}
	return rv, nil
}

func (r *ReviewPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
