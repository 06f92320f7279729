package store

import (
	"context"
	"errors"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

const bookColumns = `id, title, author, description, cover_image, isbn,
	publish_year, category, available, total_copies, available_copies, added_at`

func scanBook(row pgx.Row, b *entity.Book) error {
	return row.Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.CoverImage, &b.ISBN,
		&b.PublishYear, &b.Category, &b.Available, &b.TotalCopies, &b.AvailableCopies, &b.AddedAt,
	)
}

func (r *BookPG) List(ctx context.Context) ([]entity.Book, error) {
	return r.queryBooks(ctx, `SELECT `+bookColumns+` FROM books ORDER BY title`)
}

func (r *BookPG) ListAvailable(ctx context.Context) ([]entity.Book, error) {
	return r.queryBooks(ctx, `SELECT `+bookColumns+` FROM books WHERE available ORDER BY title`)
}

func (r *BookPG) queryBooks(ctx context.Context, query string, args ...any) ([]entity.Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
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

func (r *BookPG) GetByID(ctx context.Context, id int64) (entity.Book, error) {
	var b entity.Book
	err := scanBook(r.db.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id), &b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, usecase.ErrNotFound
		}
		return entity.Book{}, err
	}
	return b, nil
}

func (r *BookPG) Categories(ctx context.Context) ([]usecase.CategoryCount, error) {
	rows, err := r.db.Query(ctx,
		`SELECT category, COUNT(*) FROM books GROUP BY category ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []usecase.CategoryCount
	for rows.Next() {
		var c usecase.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *BookPG) Create(ctx context.Context, b *entity.Book) error {
	// A new book starts with every copy on the shelf.
	b.AvailableCopies = b.TotalCopies
	b.Available = b.AvailableCopies > 0
	const query = `
	INSERT INTO books (title, author, description, cover_image, isbn,
		publish_year, category, available, total_copies, available_copies)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id, added_at
	`
	return r.db.QueryRow(ctx, query,
		b.Title, b.Author, b.Description, b.CoverImage, b.ISBN,
		b.PublishYear, b.Category, b.Available, b.TotalCopies, b.AvailableCopies,
	).Scan(&b.ID, &b.AddedAt)
}

// Update rewrites the catalog fields inside the same per-book critical
// section the loan ledger uses. The new available count is recomputed from
// the outstanding loans so the counter invariant survives total-copy edits.
func (r *BookPG) Update(ctx context.Context, b *entity.Book) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `SELECT 1 FROM books WHERE id = $1 FOR UPDATE`, b.ID).Scan(new(int))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return usecase.ErrNotFound
		}
		return err
	}

	var outstanding int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM loans WHERE book_id = $1 AND return_date IS NULL`, b.ID,
	).Scan(&outstanding); err != nil {
		return err
	}
	if b.TotalCopies < outstanding {
		return usecase.ErrBookHasOutstandingLoans
	}

	b.AvailableCopies = b.TotalCopies - outstanding
	b.Available = b.AvailableCopies > 0

	if _, err := tx.Exec(ctx, `
		UPDATE books
		SET title = $2, author = $3, description = $4, cover_image = $5,
		    isbn = $6, publish_year = $7, category = $8,
		    total_copies = $9, available_copies = $10, available = $11
		WHERE id = $1
	`, b.ID, b.Title, b.Author, b.Description, b.CoverImage,
		b.ISBN, b.PublishYear, b.Category,
		b.TotalCopies, b.AvailableCopies, b.Available); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete refuses to remove a book that outstanding loans still reference,
// so the return path can always find the book to give the copy back to.
func (r *BookPG) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `SELECT 1 FROM books WHERE id = $1 FOR UPDATE`, id).Scan(new(int))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return usecase.ErrNotFound
		}
		return err
	}

	var outstanding int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM loans WHERE book_id = $1 AND return_date IS NULL`, id,
	).Scan(&outstanding); err != nil {
		return err
	}
	if outstanding > 0 {
		return usecase.ErrBookHasOutstandingLoans
	}

	if _, err := tx.Exec(ctx, `DELETE FROM books WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
