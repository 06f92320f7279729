package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LoanPG implements the loan ledger on Postgres. Every mutation runs in a
// single transaction that locks the book row (SELECT ... FOR UPDATE), so
// borrow, return and catalog edits for the same book serialize and the
// counter can never drift from the set of outstanding loans.
type LoanPG struct {
	db *pgxpool.Pool
}

func NewLoanPG(db *pgxpool.Pool) *LoanPG {
	return &LoanPG{db: db}
}

func (r *LoanPG) Borrow(ctx context.Context, userID, bookID int64) (entity.Loan, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return entity.Loan{}, err
	}
	defer tx.Rollback(ctx)

	var userExists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID,
	).Scan(&userExists); err != nil {
		return entity.Loan{}, err
	}
	if !userExists {
		return entity.Loan{}, usecase.ErrNotFound
	}

	var available int
	err = tx.QueryRow(ctx,
		`SELECT available_copies FROM books WHERE id = $1 FOR UPDATE`, bookID,
	).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Loan{}, usecase.ErrNotFound
		}
		return entity.Loan{}, err
	}
	// A concurrent borrow that lost the race for the last copy sees 0 here
	// and fails fast instead of retrying.
	if available <= 0 {
		return entity.Loan{}, usecase.ErrBookUnavailable
	}

	if _, err := tx.Exec(ctx, `
		UPDATE books
		SET available_copies = available_copies - 1,
		    available = available_copies - 1 > 0
		WHERE id = $1
	`, bookID); err != nil {
		return entity.Loan{}, err
	}

	now := time.Now().UTC()
	loan := entity.Loan{
		BookID:     bookID,
		UserID:     userID,
		BorrowDate: now,
		DueDate:    now.Add(usecase.LoanTerm),
	}
	if err := tx.QueryRow(ctx, `
		INSERT INTO loans (book_id, user_id, borrow_date, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, loan.BookID, loan.UserID, loan.BorrowDate, loan.DueDate).Scan(&loan.ID); err != nil {
		return entity.Loan{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return entity.Loan{}, err
	}
	return loan, nil
}

func (r *LoanPG) Return(ctx context.Context, loanID int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Locking the outstanding loan row makes a concurrent second return
	// wait here and then find no row.
	var bookID int64
	err = tx.QueryRow(ctx,
		`SELECT book_id FROM loans WHERE id = $1 AND return_date IS NULL FOR UPDATE`, loanID,
	).Scan(&bookID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return usecase.ErrNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE loans SET return_date = $2 WHERE id = $1`, loanID, time.Now().UTC(),
	); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE books
		SET available_copies = available_copies + 1,
		    available = TRUE
		WHERE id = $1
	`, bookID)
	if err != nil {
		return err
	}
	// The catalog refuses to delete a book with outstanding loans, so a
	// missing book here is an inconsistency, not a case to paper over.
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("loan %d references missing book %d", loanID, bookID)
	}

	return tx.Commit(ctx)
}

const loanViewSQL = `
	SELECT l.id, l.book_id, l.user_id, l.borrow_date, l.due_date, l.return_date,
	       b.id, b.title, b.author, b.cover_image
	FROM loans l
	JOIN books b ON b.id = l.book_id
`

func (r *LoanPG) ListOutstandingByUser(ctx context.Context, userID int64) ([]entity.LoanWithBook, error) {
	return r.queryLoanViews(ctx,
		loanViewSQL+`WHERE l.user_id = $1 AND l.return_date IS NULL ORDER BY l.borrow_date DESC, l.id DESC`,
		userID)
}

func (r *LoanPG) ListHistoryByUser(ctx context.Context, userID int64) ([]entity.LoanWithBook, error) {
	return r.queryLoanViews(ctx,
		loanViewSQL+`WHERE l.user_id = $1 AND l.return_date IS NOT NULL ORDER BY l.borrow_date DESC, l.id DESC`,
		userID)
}

func (r *LoanPG) ListOutstanding(ctx context.Context) ([]entity.LoanWithBook, error) {
	return r.queryLoanViews(ctx,
		loanViewSQL+`WHERE l.return_date IS NULL ORDER BY l.borrow_date DESC, l.id DESC`)
}

func (r *LoanPG) queryLoanViews(ctx context.Context, query string, args ...any) ([]entity.LoanWithBook, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []entity.LoanWithBook
	for rows.Next() {
		var v entity.LoanWithBook
		if err := rows.Scan(
			&v.ID, &v.BookID, &v.UserID, &v.BorrowDate, &v.DueDate, &v.ReturnDate,
			&v.Book.ID, &v.Book.Title, &v.Book.Author, &v.Book.CoverImage,
		); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
