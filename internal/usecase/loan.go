package usecase

import (
	"context"
	"time"

	"libraryapi/internal/entity"
)

// LoanTerm is the fixed borrowing period; DueDate = BorrowDate + LoanTerm.
const LoanTerm = 30 * 24 * time.Hour

// LoanRepository owns the borrow/return state machine and keeps the book
// copy counters in sync with the set of outstanding loans.
//
// For every book: available_copies == total_copies - outstanding loans,
// 0 <= available_copies <= total_copies, available <=> available_copies > 0.
//
// Borrow and Return must each run as one atomic unit against the store so
// the counter and the ledger can never be observed diverged, and concurrent
// calls against the same book must serialize.
type LoanRepository interface {
	// Borrow creates an outstanding loan for (userID, bookID) and takes one
	// copy. Missing user or book: ErrNotFound. No free copy: ErrBookUnavailable.
	Borrow(ctx context.Context, userID, bookID int64) (entity.Loan, error)

	// Return closes the outstanding loan and gives the copy back. A loan
	// that does not exist or was already returned: ErrNotFound.
	Return(ctx context.Context, loanID int64) error

	// ListOutstandingByUser returns the user's open loans joined with book
	// display fields, newest borrow first.
	ListOutstandingByUser(ctx context.Context, userID int64) ([]entity.LoanWithBook, error)

	// ListHistoryByUser returns the user's returned loans, newest borrow first.
	ListHistoryByUser(ctx context.Context, userID int64) ([]entity.LoanWithBook, error)

	// ListOutstanding returns every open loan, for admin oversight.
	ListOutstanding(ctx context.Context) ([]entity.LoanWithBook, error)
}
