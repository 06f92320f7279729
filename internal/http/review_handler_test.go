package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"libraryapi/internal/entity"
	"libraryapi/internal/store/mocks"
	"libraryapi/internal/testutil"
	"libraryapi/internal/usecase"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

type reviewMocks struct {
	reviews *mocks.MockReviewRepository
	books   *mocks.MockBookRepository
	users   *mocks.MockUserRepository
}

func newReviewHandler(t *testing.T) (*ReviewHandler, reviewMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	m := reviewMocks{
		reviews: mocks.NewMockReviewRepository(ctrl),
		books:   mocks.NewMockBookRepository(ctrl),
		users:   mocks.NewMockUserRepository(ctrl),
	}
	return NewReviewHandler(m.reviews, m.books, m.users), m
}

func TestReviewHandler_ListByBook(t *testing.T) {
	handler, m := newReviewHandler(t)
	m.reviews.EXPECT().ListByBook(gomock.Any(), int64(42)).Return([]entity.Review{
		{ID: 1, BookID: 42, UserID: 7, Rating: 5, Comment: "great", Username: "testuser"},
	}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/reviews/book/42", nil)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var reviews []entity.Review
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &reviews))
	assert.Len(t, reviews, 1)
	assert.Equal(t, "testuser", reviews[0].Username)
}

func TestReviewHandler_ListByBook_Empty(t *testing.T) {
	handler, m := newReviewHandler(t)
	m.reviews.EXPECT().ListByBook(gomock.Any(), int64(42)).Return(nil, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/reviews/book/42", nil)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestReviewHandler_Create(t *testing.T) {
	validBody := map[string]interface{}{
		"bookId":  42,
		"userId":  7,
		"rating":  4,
		"comment": "solid read",
	}

	tests := []struct {
		name           string
		body           map[string]interface{}
		setupMock      func(m reviewMocks)
		expectedStatus int
	}{
		{
			name: "success",
			body: validBody,
			setupMock: func(m reviewMocks) {
				m.books.EXPECT().GetByID(gomock.Any(), int64(42)).Return(testutil.TestBook, nil)
				m.users.EXPECT().GetByID(gomock.Any(), int64(7)).Return(testutil.TestUser, nil)
				m.reviews.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "book not found",
			body: validBody,
			setupMock: func(m reviewMocks) {
				m.books.EXPECT().GetByID(gomock.Any(), int64(42)).Return(entity.Book{}, usecase.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "user not found",
			body: validBody,
			setupMock: func(m reviewMocks) {
				m.books.EXPECT().GetByID(gomock.Any(), int64(42)).Return(testutil.TestBook, nil)
				m.users.EXPECT().GetByID(gomock.Any(), int64(7)).Return(entity.User{}, usecase.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "rating above range",
			body: map[string]interface{}{
				"bookId": 42,
				"userId": 7,
				"rating": 6,
			},
			setupMock:      func(m reviewMocks) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "rating below range",
			body: map[string]interface{}{
				"bookId": 42,
				"userId": 7,
				"rating": 0,
			},
			setupMock:      func(m reviewMocks) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, m := newReviewHandler(t)
			tt.setupMock(m)

			w := httptest.NewRecorder()
			r := testutil.NewRequest(http.MethodPost, "/reviews", tt.body)
			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestReviewHandler_Vote(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMock      func(m reviewMocks)
		expectedStatus int
	}{
		{
			name: "like",
			path: "/reviews/1/like",
			setupMock: func(m reviewMocks) {
				m.reviews.EXPECT().Like(gomock.Any(), int64(1)).Return(entity.Review{ID: 1, Likes: 3}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "dislike",
			path: "/reviews/1/dislike",
			setupMock: func(m reviewMocks) {
				m.reviews.EXPECT().Dislike(gomock.Any(), int64(1)).Return(entity.Review{ID: 1, Dislikes: 2}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown review",
			path: "/reviews/999/like",
			setupMock: func(m reviewMocks) {
				m.reviews.EXPECT().Like(gomock.Any(), int64(999)).Return(entity.Review{}, usecase.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, m := newReviewHandler(t)
			tt.setupMock(m)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPut, tt.path, nil)
			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestReviewHandler_Delete(t *testing.T) {
	handler, m := newReviewHandler(t)
	m.reviews.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/reviews/1", nil)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}
