package usecase

import "errors"

var (
	// ErrNotFound is returned when the keyed entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned on unique-constraint style conflicts
	// (duplicate email, duplicate favorite).
	ErrAlreadyExists = errors.New("already exists")

	// ErrBookUnavailable is returned when a borrow attempt finds no free
	// copy. A borrow losing a race for the last copy fails with this error
	// rather than retrying.
	ErrBookUnavailable = errors.New("book not available")

	// ErrBookHasOutstandingLoans rejects catalog changes that would orphan
	// the loan ledger: deleting a book with outstanding loans, or lowering
	// total copies below the outstanding count.
	ErrBookHasOutstandingLoans = errors.New("book has outstanding loans")
)
