package entity

import "time"

// Loan records one borrowing of one book copy. A nil ReturnDate means the
// loan is still outstanding; the transition to returned happens exactly once.
type Loan struct {
	ID         int64      `json:"id"`
	BookID     int64      `json:"bookId"`
	UserID     int64      `json:"userId"`
	BorrowDate time.Time  `json:"borrowDate"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate"`
}

// Outstanding reports whether the loan has not been returned yet.
func (l Loan) Outstanding() bool {
	return l.ReturnDate == nil
}

// LoanWithBook is the joined view returned by the borrow listing endpoints.
type LoanWithBook struct {
	Loan
	Book BookInfo `json:"book"`
}
