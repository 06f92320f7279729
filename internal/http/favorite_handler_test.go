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

type favoriteMocks struct {
	favorites *mocks.MockFavoriteRepository
	books     *mocks.MockBookRepository
	users     *mocks.MockUserRepository
}

func newFavoriteHandler(t *testing.T) (*FavoriteHandler, favoriteMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	m := favoriteMocks{
		favorites: mocks.NewMockFavoriteRepository(ctrl),
		books:     mocks.NewMockBookRepository(ctrl),
		users:     mocks.NewMockUserRepository(ctrl),
	}
	return NewFavoriteHandler(m.favorites, m.books, m.users), m
}

func TestFavoriteHandler_ListByUser(t *testing.T) {
	handler, m := newFavoriteHandler(t)
	m.users.EXPECT().GetByID(gomock.Any(), int64(7)).Return(testutil.TestUser, nil)
	m.favorites.EXPECT().ListByUser(gomock.Any(), int64(7)).Return([]entity.Book{testutil.TestBook}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/favorites/user/7", nil)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var books []entity.Book
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
	assert.Len(t, books, 1)
	assert.Equal(t, "Test Book Title", books[0].Title)
}

func TestFavoriteHandler_ListByUser_UnknownUser(t *testing.T) {
	handler, m := newFavoriteHandler(t)
	m.users.EXPECT().GetByID(gomock.Any(), int64(999)).Return(entity.User{}, usecase.ErrNotFound)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/favorites/user/999", nil)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavoriteHandler_Add(t *testing.T) {
	body := map[string]interface{}{"userId": 7, "bookId": 42}

	tests := []struct {
		name           string
		setupMock      func(m favoriteMocks)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "success",
			setupMock: func(m favoriteMocks) {
				m.users.EXPECT().GetByID(gomock.Any(), int64(7)).Return(testutil.TestUser, nil)
				m.books.EXPECT().GetByID(gomock.Any(), int64(42)).Return(testutil.TestBook, nil)
				m.favorites.EXPECT().Add(gomock.Any(), int64(7), int64(42)).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "already favorited",
			setupMock: func(m favoriteMocks) {
				m.users.EXPECT().GetByID(gomock.Any(), int64(7)).Return(testutil.TestUser, nil)
				m.books.EXPECT().GetByID(gomock.Any(), int64(42)).Return(testutil.TestBook, nil)
				m.favorites.EXPECT().Add(gomock.Any(), int64(7), int64(42)).Return(usecase.ErrAlreadyExists)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "ALREADY_EXISTS",
		},
		{
			name: "unknown book",
			setupMock: func(m favoriteMocks) {
				m.users.EXPECT().GetByID(gomock.Any(), int64(7)).Return(testutil.TestUser, nil)
				m.books.EXPECT().GetByID(gomock.Any(), int64(42)).Return(entity.Book{}, usecase.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, m := newFavoriteHandler(t)
			tt.setupMock(m)

			w := httptest.NewRecorder()
			r := testutil.NewRequest(http.MethodPost, "/favorites", body)
			handler.ServeHTTP(w, r)

			resp := testutil.RecordHTTPResponse(w)
			assert.Equal(t, tt.expectedStatus, resp.Code)
			if tt.expectedCode != "" {
				errBody, _ := resp.Body["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedCode, errBody["code"])
			}
		})
	}
}

func TestFavoriteHandler_Remove(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(m favoriteMocks)
		expectedStatus int
	}{
		{
			name: "success",
			setupMock: func(m favoriteMocks) {
				m.favorites.EXPECT().Remove(gomock.Any(), int64(7), int64(42)).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not favorited",
			setupMock: func(m favoriteMocks) {
				m.favorites.EXPECT().Remove(gomock.Any(), int64(7), int64(42)).Return(usecase.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, m := newFavoriteHandler(t)
			tt.setupMock(m)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodDelete, "/favorites/7/42", nil)
			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestFavoriteHandler_Check(t *testing.T) {
	handler, m := newFavoriteHandler(t)
	m.favorites.EXPECT().IsFavorite(gomock.Any(), int64(7), int64(42)).Return(true, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/favorites/check/7/42", nil)
	handler.ServeHTTP(w, r)

	resp := testutil.RecordHTTPResponse(w)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, true, resp.Body["isFavorite"])
}
