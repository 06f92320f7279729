package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"
)

type FavoriteHandler struct {
	favorites usecase.FavoriteRepository
	books     usecase.BookRepository
	users     usecase.UserRepository
}

func NewFavoriteHandler(favorites usecase.FavoriteRepository, books usecase.BookRepository, users usecase.UserRepository) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, books: books, users: users}
}

func (h *FavoriteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r.URL.Path)
	if len(segments) == 0 || segments[0] != "favorites" {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(segments) == 1 && r.Method == http.MethodPost:
		h.add(w, r)
	case len(segments) == 3 && segments[1] == "user" && r.Method == http.MethodGet:
		if id, ok := parseID(segments[2]); ok {
			h.listByUser(w, r, id)
			return
		}
		http.NotFound(w, r)
	case len(segments) == 4 && segments[1] == "check" && r.Method == http.MethodGet:
		userID, ok1 := parseID(segments[2])
		bookID, ok2 := parseID(segments[3])
		if ok1 && ok2 {
			h.check(w, r, userID, bookID)
			return
		}
		http.NotFound(w, r)
	case len(segments) == 3 && r.Method == http.MethodDelete:
		userID, ok1 := parseID(segments[1])
		bookID, ok2 := parseID(segments[2])
		if ok1 && ok2 {
			h.remove(w, r, userID, bookID)
			return
		}
		http.NotFound(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// @Summary List a user's favorite books
// @Tags favorites
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} entity.Book
// @Failure 404 {object} ErrorResponse
// @Router /favorites/user/{id} [get]
func (h *FavoriteHandler) listByUser(w http.ResponseWriter, r *http.Request, userID int64) {
	if _, err := h.users.GetByID(r.Context(), userID); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	books, err := h.favorites.ListByUser(r.Context(), userID)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if books == nil {
		books = []entity.Book{}
	}
	JSONRaw(w, http.StatusOK, books)
}

type addFavoriteRequest struct {
	UserID int64 `json:"userId" validate:"required,gt=0"`
	BookID int64 `json:"bookId" validate:"required,gt=0"`
}

// @Summary Add favorite
// @Tags favorites
// @Accept json
// @Produce json
// @Param favorite body addFavoriteRequest true "User and book ids"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /favorites/ [post]
func (h *FavoriteHandler) add(w http.ResponseWriter, r *http.Request) {
	var req addFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", toErrorDetails(validationErrors))
		return
	}

	if _, err := h.users.GetByID(r.Context(), req.UserID); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
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

	if err := h.favorites.Add(r.Context(), req.UserID, req.BookID); err != nil {
		if errors.Is(err, usecase.ErrAlreadyExists) {
			JSONError(w, http.StatusBadRequest, "ALREADY_EXISTS", "Book already in favorites", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	JSONSuccess(w, nil, map[string]string{"message": "Book added to favorites successfully"})
}

// @Summary Remove favorite
// @Tags favorites
// @Produce json
// @Param userId path int true "User ID"
// @Param bookId path int true "Book ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /favorites/{userId}/{bookId} [delete]
func (h *FavoriteHandler) remove(w http.ResponseWriter, r *http.Request, userID, bookID int64) {
	if err := h.favorites.Remove(r.Context(), userID, bookID); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "Favorite not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	JSONSuccess(w, nil, map[string]string{"message": "Book removed from favorites successfully"})
}

// @Summary Check favorite membership
// @Tags favorites
// @Produce json
// @Param userId path int true "User ID"
// @Param bookId path int true "Book ID"
// @Success 200 {object} map[string]bool
// @Router /favorites/check/{userId}/{bookId} [get]
func (h *FavoriteHandler) check(w http.ResponseWriter, r *http.Request, userID, bookID int64) {
	isFavorite, err := h.favorites.IsFavorite(r.Context(), userID, bookID)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	JSONRaw(w, http.StatusOK, map[string]bool{"isFavorite": isFavorite})
}
