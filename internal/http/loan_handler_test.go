package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"libraryapi/internal/entity"
	"libraryapi/internal/store/mocks"
	"libraryapi/internal/testutil"
	"libraryapi/internal/usecase"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func newLoanView(loanID int64) entity.LoanWithBook {
	now := time.Now()
	return entity.LoanWithBook{
		Loan: entity.Loan{
			ID:         loanID,
			BookID:     42,
			UserID:     7,
			BorrowDate: now,
			DueDate:    now.Add(usecase.LoanTerm),
		},
		Book: entity.BookInfo{
			ID:     42,
			Title:  "Test Book Title",
			Author: "Test Author",
		},
	}
}

func TestLoanHandler_Borrow(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(m *mocks.MockLoanRepository)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "success",
			body: map[string]interface{}{"userId": 7, "bookId": 42},
			setupMock: func(m *mocks.MockLoanRepository) {
				m.EXPECT().
					Borrow(gomock.Any(), int64(7), int64(42)).
					Return(entity.Loan{ID: 11, UserID: 7, BookID: 42}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "book not found",
			body: map[string]interface{}{"userId": 7, "bookId": 999},
			setupMock: func(m *mocks.MockLoanRepository) {
				m.EXPECT().
					Borrow(gomock.Any(), int64(7), int64(999)).
					Return(entity.Loan{}, usecase.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
		{
			name: "user not found",
			body: map[string]interface{}{"userId": 999, "bookId": 42},
			setupMock: func(m *mocks.MockLoanRepository) {
				m.EXPECT().
					Borrow(gomock.Any(), int64(999), int64(42)).
					Return(entity.Loan{}, usecase.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
		{
			name: "no copies left",
			body: map[string]interface{}{"userId": 7, "bookId": 42},
			setupMock: func(m *mocks.MockLoanRepository) {
				m.EXPECT().
					Borrow(gomock.Any(), int64(7), int64(42)).
					Return(entity.Loan{}, usecase.ErrBookUnavailable)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BOOK_UNAVAILABLE",
		},
		{
			name:           "missing book id",
			body:           map[string]interface{}{"userId": 7},
			setupMock:      func(m *mocks.MockLoanRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "negative ids",
			body:           map[string]interface{}{"userId": -1, "bookId": -2},
			setupMock:      func(m *mocks.MockLoanRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "malformed body",
			body:           "not json at all",
			setupMock:      func(m *mocks.MockLoanRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_REQUEST",
		},
		{
			name: "server error",
			body: map[string]interface{}{"userId": 7, "bookId": 42},
			setupMock: func(m *mocks.MockLoanRepository) {
				m.EXPECT().
					Borrow(gomock.Any(), int64(7), int64(42)).
					Return(entity.Loan{}, context.DeadlineExceeded)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			mockRepo := mocks.NewMockLoanRepository(ctrl)
			tt.setupMock(mockRepo)
			handler := NewLoanHandler(mockRepo)

			w := httptest.NewRecorder()
			var r *http.Request
			if s, ok := tt.body.(string); ok {
				r = httptest.NewRequest(http.MethodPost, "/borrowed/", strings.NewReader(s))
			} else {
				r = testutil.NewRequest(http.MethodPost, "/borrowed/", tt.body)
			}

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

func TestLoanHandler_Borrow_ResponseShape(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := mocks.NewMockLoanRepository(ctrl)
	mockRepo.EXPECT().
		Borrow(gomock.Any(), int64(7), int64(42)).
		Return(entity.Loan{ID: 11, UserID: 7, BookID: 42}, nil)
	handler := NewLoanHandler(mockRepo)

	w := httptest.NewRecorder()
	r := testutil.NewRequest(http.MethodPost, "/borrowed/", map[string]interface{}{"userId": 7, "bookId": 42})
	handler.ServeHTTP(w, r)

	resp := testutil.RecordHTTPResponse(w)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, true, resp.Body["success"])
	assert.Equal(t, float64(11), resp.Body["borrowId"])
}

func TestLoanHandler_Return(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMock      func(m *mocks.MockLoanRepository)
		expectedStatus int
	}{
		{
			name: "success",
			path: "/borrowed/return/11",
			setupMock: func(m *mocks.MockLoanRepository) {
				m.EXPECT().Return(gomock.Any(), int64(11)).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown or already returned",
			path: "/borrowed/return/999",
			setupMock: func(m *mocks.MockLoanRepository) {
				m.EXPECT().Return(gomock.Any(), int64(999)).Return(usecase.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "non-numeric id",
			path:           "/borrowed/return/abc",
			setupMock:      func(m *mocks.MockLoanRepository) {},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "server error",
			path: "/borrowed/return/11",
			setupMock: func(m *mocks.MockLoanRepository) {
				m.EXPECT().Return(gomock.Any(), int64(11)).Return(context.DeadlineExceeded)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			mockRepo := mocks.NewMockLoanRepository(ctrl)
			tt.setupMock(mockRepo)
			handler := NewLoanHandler(mockRepo)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, tt.path, nil)
			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestLoanHandler_ListForUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := mocks.NewMockLoanRepository(ctrl)
	mockRepo.EXPECT().
		ListOutstandingByUser(gomock.Any(), int64(7)).
		Return([]entity.LoanWithBook{newLoanView(11), newLoanView(12)}, nil)
	handler := NewLoanHandler(mockRepo)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/borrowed/user/7", nil)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var views []entity.LoanWithBook
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	assert.Len(t, views, 2)
	assert.Equal(t, int64(11), views[0].ID)
	assert.Equal(t, "Test Book Title", views[0].Book.Title)
	assert.Nil(t, views[0].ReturnDate)
}

func TestLoanHandler_ListForUser_EmptyIsBareArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := mocks.NewMockLoanRepository(ctrl)
	mockRepo.EXPECT().
		ListOutstandingByUser(gomock.Any(), int64(7)).
		Return(nil, nil)
	handler := NewLoanHandler(mockRepo)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/borrowed/user/7", nil)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestLoanHandler_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := mocks.NewMockLoanRepository(ctrl)

	returned := newLoanView(9)
	at := time.Now()
	returned.ReturnDate = &at
	mockRepo.EXPECT().
		ListHistoryByUser(gomock.Any(), int64(7)).
		Return([]entity.LoanWithBook{returned}, nil)
	handler := NewLoanHandler(mockRepo)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/borrowed/history/7", nil)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var views []entity.LoanWithBook
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	assert.Len(t, views, 1)
	assert.NotNil(t, views[0].ReturnDate)
}

func TestLoanHandler_ListActive(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(m *mocks.MockLoanRepository)
		expectedStatus int
		expectedLen    int
	}{
		{
			name: "success",
			setupMock: func(m *mocks.MockLoanRepository) {
				m.EXPECT().
					ListOutstanding(gomock.Any()).
					Return([]entity.LoanWithBook{newLoanView(1), newLoanView(2), newLoanView(3)}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedLen:    3,
		},
		{
			name: "empty",
			setupMock: func(m *mocks.MockLoanRepository) {
				m.EXPECT().ListOutstanding(gomock.Any()).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedLen:    0,
		},
		{
			name: "server error",
			setupMock: func(m *mocks.MockLoanRepository) {
				m.EXPECT().ListOutstanding(gomock.Any()).Return(nil, context.DeadlineExceeded)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			mockRepo := mocks.NewMockLoanRepository(ctrl)
			tt.setupMock(mockRepo)
			handler := NewLoanHandler(mockRepo)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/borrowed/active", nil)
			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var views []entity.LoanWithBook
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
				assert.Len(t, views, tt.expectedLen)
			}
		})
	}
}

func TestLoanHandler_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	handler := NewLoanHandler(mocks.NewMockLoanRepository(ctrl))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/borrowed/", nil)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
