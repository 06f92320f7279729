package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"
)

// LoanHandler serves the /borrowed subtree. The handler only parses and
// renders; the borrow/return state machine itself lives behind
// usecase.LoanRepository so every mutation stays one atomic unit.
type LoanHandler struct {
	loans usecase.LoanRepository
}

func NewLoanHandler(loans usecase.LoanRepository) *LoanHandler {
	return &LoanHandler{loans: loans}
}

func (h *LoanHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r.URL.Path)
	if len(segments) == 0 || segments[0] != "borrowed" {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(segments) == 1 && r.Method == http.MethodPost:
		h.borrow(w, r)
	case len(segments) == 3 && segments[1] == "return" && r.Method == http.MethodPost:
		if id, ok := parseID(segments[2]); ok {
			h.returnLoan(w, r, id)
			return
		}
		http.NotFound(w, r)
	case len(segments) == 3 && segments[1] == "user" && r.Method == http.MethodGet:
		if id, ok := parseID(segments[2]); ok {
			h.listForUser(w, r, id, false)
			return
		}
		http.NotFound(w, r)
	case len(segments) == 3 && segments[1] == "history" && r.Method == http.MethodGet:
		if id, ok := parseID(segments[2]); ok {
			h.listForUser(w, r, id, true)
			return
		}
		http.NotFound(w, r)
	case len(segments) == 2 && segments[1] == "active" && r.Method == http.MethodGet:
		h.listActive(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type borrowRequest struct {
	UserID int64 `json:"userId" validate:"required,gt=0"`
	BookID int64 `json:"bookId" validate:"required,gt=0"`
}

// @Summary Borrow a book
// @Description Take one available copy of a book and open a loan for the user
// @Tags borrowed
// @Accept json
// @Produce json
// @Param borrow body borrowRequest true "User and book ids"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /borrowed/ [post]
func (h *LoanHandler) borrow(w http.ResponseWriter, r *http.Request) {
	var req borrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", toErrorDetails(validationErrors))
		return
	}

	loan, err := h.loans.Borrow(r.Context(), req.UserID, req.BookID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book or user not found", nil)
		case errors.Is(err, usecase.ErrBookUnavailable):
			JSONError(w, http.StatusBadRequest, "BOOK_UNAVAILABLE", "Book not available", nil)
		default:
			JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	JSONRaw(w, http.StatusOK, map[string]any{
		"success":  true,
		"borrowId": loan.ID,
	})
}

// @Summary Return a borrowed book
// @Description Close an outstanding loan and put the copy back on the shelf
// @Tags borrowed
// @Produce json
// @Param borrowId path int true "Loan ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Router /borrowed/return/{borrowId} [post]
func (h *LoanHandler) returnLoan(w http.ResponseWriter, r *http.Request, loanID int64) {
	if err := h.loans.Return(r.Context(), loanID); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "Borrow record not found or already returned", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	JSONRaw(w, http.StatusOK, map[string]any{"success": true})
}

// @Summary List a user's loans
// @Description Outstanding loans (or loan history) for a user, newest first
// @Tags borrowed
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} entity.LoanWithBook
// @Router /borrowed/user/{userId} [get]
func (h *LoanHandler) listForUser(w http.ResponseWriter, r *http.Request, userID int64, history bool) {
	var (
		views []entity.LoanWithBook
		err   error
	)
	if history {
		views, err = h.loans.ListHistoryByUser(r.Context(), userID)
	} else {
		views, err = h.loans.ListOutstandingByUser(r.Context(), userID)
	}
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if views == nil {
		views = []entity.LoanWithBook{}
	}
	JSONRaw(w, http.StatusOK, views)
}

// @Summary List all outstanding loans
// @Description Every open loan in the system, for the admin dashboard
// @Tags borrowed
// @Produce json
// @Success 200 {array} entity.LoanWithBook
// @Router /borrowed/active [get]
func (h *LoanHandler) listActive(w http.ResponseWriter, r *http.Request) {
	views, err := h.loans.ListOutstanding(r.Context())
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if views == nil {
		views = []entity.LoanWithBook{}
	}
	JSONRaw(w, http.StatusOK, views)
}
