package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/analytics"
	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/models"
)

func TestRouteRegistration(t *testing.T) {
	router, store, source := setupTestHandler(t)

	anchor := "anchor"
	store.On("GetCursor", mock.Anything, mock.Anything).Return(&models.RepositoryCursor{
		Repository: testRepo,
		Cursor:     &anchor,
	}, nil)
	store.On("GetRepoMonthlyStats", mock.Anything, mock.Anything, mock.Anything).Return([]*models.RepoMonthlyStat{}, nil)
	store.On("GetUserMonthlyStats", mock.Anything, mock.Anything, mock.Anything).Return([]*models.UserMonthlyStat{}, nil)
	store.On("ListUserRepositories", mock.Anything, mock.Anything).Return([]*models.UserRepository{}, nil)
	store.On("GetPullRequestProps", mock.Anything, mock.Anything).Return(nil, nil)
	store.On("RemoveUserRepository", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	source.On("FetchPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&analytics.EventPage{}, nil)
	source.On("TeamRepositories", mock.Anything, mock.Anything).Return([]string{}, nil)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{
			name:           "health",
			method:         "GET",
			path:           "/health",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "ingest repository",
			method:         "POST",
			path:           "/api/v1/repositories/backend/ingest",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "repository analytics",
			method:         "GET",
			path:           "/api/v1/repositories/backend/analytics",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "user analytics",
			method:         "GET",
			path:           "/api/v1/users/user-1/analytics",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "list user repositories",
			method:         "GET",
			path:           "/api/v1/users/user-1/repositories",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "track repository without body",
			method:         "POST",
			path:           "/api/v1/users/user-1/repositories",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "untrack repository",
			method:         "DELETE",
			path:           "/api/v1/users/user-1/repositories/backend",
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "pull request props",
			method:         "GET",
			path:           "/api/v1/pull-requests/PR_1",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "set priority without body",
			method:         "PUT",
			path:           "/api/v1/pull-requests/PR_1/priority",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "set description without body",
			method:         "PUT",
			path:           "/api/v1/pull-requests/PR_1/description",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(tt.method, tt.path, nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
