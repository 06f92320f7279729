package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"
)

type BookHandler struct {
	books usecase.BookRepository
}

func NewBookHandler(books usecase.BookRepository) *BookHandler {
	return &BookHandler{books: books}
}

func (h *BookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r.URL.Path)
	if len(segments) == 0 || segments[0] != "books" {
		http.NotFound(w, r)
		return
	}

	if len(segments) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	if len(segments) != 2 {
		http.NotFound(w, r)
		return
	}

	// fixed sub-resources before numeric ids
	switch segments[1] {
	case "categories":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.categories(w, r)
		return
	case "available":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.listAvailable(w, r)
		return
	}

	id, ok := parseID(segments[1])
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {array} entity.Book
// @Router /books/ [get]
func (h *BookHandler) list(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.List(r.Context())
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if books == nil {
		books = []entity.Book{}
	}
	JSONRaw(w, http.StatusOK, books)
}

// @Summary List available books
// @Tags books
// @Produce json
// @Success 200 {array} entity.Book
// @Router /books/available [get]
func (h *BookHandler) listAvailable(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.ListAvailable(r.Context())
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if books == nil {
		books = []entity.Book{}
	}
	JSONRaw(w, http.StatusOK, books)
}

// @Summary Category aggregation
// @Description Book count per category
// @Tags books
// @Produce json
// @Success 200 {array} usecase.CategoryCount
// @Router /books/categories [get]
func (h *BookHandler) categories(w http.ResponseWriter, r *http.Request) {
	counts, err := h.books.Categories(r.Context())
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if counts == nil {
		counts = []usecase.CategoryCount{}
	}
	JSONRaw(w, http.StatusOK, counts)
}

// @Summary Get book
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} entity.Book
// @Failure 404 {object} ErrorResponse
// @Router /books/{id} [get]
func (h *BookHandler) get(w http.ResponseWriter, r *http.Request, id int64) {
	book, err := h.books.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	JSONRaw(w, http.StatusOK, book)
}

type bookRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Author      string `json:"author" validate:"required,max=255"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage"`
	ISBN        string `json:"isbn" validate:"required,isbn"`
	PublishYear int    `json:"publishYear" validate:"required,gte=1000,lte=2100"`
	Category    string `json:"category" validate:"required,max=100"`
	TotalCopies int    `json:"totalCopies" validate:"required,gte=1"`
}

// @Summary Create book
// @Tags books
// @Accept json
// @Produce json
// @Param book body bookRequest true "Book data"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /books/ [post]
func (h *BookHandler) create(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", toErrorDetails(validationErrors))
		return
	}

	book := entity.Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		ISBN:        req.ISBN,
		PublishYear: req.PublishYear,
		Category:    req.Category,
		TotalCopies: req.TotalCopies,
	}
	if err := h.books.Create(r.Context(), &book); err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	JSONSuccessCreated(w, book)
}

// @Summary Update book
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param book body bookRequest true "Book data"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /books/{id} [put]
func (h *BookHandler) update(w http.ResponseWriter, r *http.Request, id int64) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", toErrorDetails(validationErrors))
		return
	}

	book := entity.Book{
		ID:          id,
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		ISBN:        req.ISBN,
		PublishYear: req.PublishYear,
		Category:    req.Category,
		TotalCopies: req.TotalCopies,
	}
	if err := h.books.Update(r.Context(), &book); err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		case errors.Is(err, usecase.ErrBookHasOutstandingLoans):
			JSONError(w, http.StatusConflict, "CONFLICT", "Total copies cannot be lower than outstanding loans", nil)
		default:
			JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}
	JSONSuccess(w, book, nil)
}

// @Summary Delete book
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /books/{id} [delete]
func (h *BookHandler) delete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.books.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		case errors.Is(err, usecase.ErrBookHasOutstandingLoans):
			JSONError(w, http.StatusConflict, "CONFLICT", "Book has outstanding loans", nil)
		default:
			JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}
	JSONSuccess(w, nil, map[string]string{"message": "Book deleted successfully"})
}
