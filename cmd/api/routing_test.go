package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The router is built against a nil pool; these cases exercise only the
// dispatch paths that never reach a repository.
func TestRouting(t *testing.T) {
	router := newRouter(nil, "test-secret")

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"unknown prefix", http.MethodGet, "/nope", http.StatusNotFound},
		{"borrow rejects delete", http.MethodDelete, "/borrowed/", http.StatusMethodNotAllowed},
		{"books rejects patch", http.MethodPatch, "/books", http.StatusMethodNotAllowed},
		{"users root rejects post", http.MethodPost, "/users", http.StatusMethodNotAllowed},
		{"login rejects get", http.MethodGet, "/users/login", http.StatusMethodNotAllowed},
		{"register rejects get", http.MethodGet, "/users/register", http.StatusMethodNotAllowed},
		{"non-numeric book id", http.MethodGet, "/books/abc", http.StatusNotFound},
		{"non-numeric loan id", http.MethodPost, "/borrowed/return/abc", http.StatusNotFound},
		{"messages rejects bare root", http.MethodGet, "/messages", http.StatusMethodNotAllowed},
		{"favorites rejects get root", http.MethodGet, "/favorites", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tt.method, tt.path, nil)
			router.ServeHTTP(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
