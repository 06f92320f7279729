package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"
)

type ReviewHandler struct {
	reviews usecase.ReviewRepository
	books   usecase.BookRepository
	users   usecase.UserRepository
}

func NewReviewHandler(reviews usecase.ReviewRepository, books usecase.BookRepository, users usecase.UserRepository) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, books: books, users: users}
}

func (h *ReviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r.URL.Path)
	if len(segments) == 0 || segments[0] != "reviews" {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(segments) == 1 && r.Method == http.MethodPost:
		h.create(w, r)
	case len(segments) == 3 && segments[1] == "book" && r.Method == http.MethodGet:
		if id, ok := parseID(segments[2]); ok {
			h.listByBook(w, r, id)
			return
		}
		http.NotFound(w, r)
	case len(segments) == 3 && segments[2] == "like" && r.Method == http.MethodPut:
		if id, ok := parseID(segments[1]); ok {
			h.vote(w, r, id, true)
			return
		}
		http.NotFound(w, r)
	case len(segments) == 3 && segments[2] == "dislike" && r.Method == http.MethodPut:
		if id, ok := parseID(segments[1]); ok {
			h.vote(w, r, id, false)
			return
		}
		http.NotFound(w, r)
	case len(segments) == 2 && r.Method == http.MethodDelete:
		if id, ok := parseID(segments[1]); ok {
			h.delete(w, r, id)
			return
		}
		http.NotFound(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// @Summary List reviews for a book
// @Tags reviews
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {array} entity.Review
// @Router /reviews/book/{id} [get]
func (h *ReviewHandler) listByBook(w http.ResponseWriter, r *http.Request, bookID int64) {
	reviews, err := h.reviews.ListByBook(r.Context(), bookID)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if reviews == nil {
		reviews = []entity.Review{}
	}
	JSONRaw(w, http.StatusOK, reviews)
}

type createReviewRequest struct {
	BookID  int64  `json:"bookId" validate:"required,gt=0"`
	UserID  int64  `json:"userId" validate:"required,gt=0"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// @Summary Create review
// @Tags reviews
// @Accept json
// @Produce json
// @Param review body createReviewRequest true "Review data"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /reviews/ [post]
func (h *ReviewHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", toErrorDetails(validationErrors))
		return
	}

	if _, err := h.books.GetByID(r.Context(), req.BookID); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	user, err := h.users.GetByID(r.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	review := entity.Review{
		BookID:  req.BookID,
		UserID:  req.UserID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := h.reviews.Create(r.Context(), &review); err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	review.Username = user.Username

	JSONSuccessCreated(w, review)
}

// @Summary Like or dislike a review
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} entity.Review
// @Failure 404 {object} ErrorResponse
// @Router /reviews/{id}/like [put]
func (h *ReviewHandler) vote(w http.ResponseWriter, r *http.Request, id int64, like bool) {
	var (
		review entity.Review
		err    error
	)
	if like {
		review, err = h.reviews.Like(r.Context(), id)
	} else {
		review, err = h.reviews.Dislike(r.Context(), id)
	}
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "Review not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	JSONRaw(w, http.StatusOK, review)
}

// @Summary Delete review
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) delete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.reviews.Delete(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "Review not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	JSONSuccess(w, nil, map[string]string{"message": "Review deleted successfully"})
}
