package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"awaaz/internal/domain"
	"awaaz/internal/handler"
	"awaaz/internal/service"
	"awaaz/mocks"
)

func newSessionRouter(repo *mocks.MockSessionRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewSessionHandler(service.NewSessionService(repo))
	r := gin.New()
	r.POST("/api/v1/sessions", h.SaveSession)
	r.GET("/api/v1/sessions", h.ListSessions)
	r.GET("/api/v1/sessions/:id", h.GetSession)
	return r
}

func TestGetSession_HTTP(t *testing.T) {
	id := uuid.New()
	repo := new(mocks.MockSessionRepo)
	repo.On("GetByID", mock.Anything, id).Return(&domain.FormSession{
		ID:        id,
		Status:    domain.SessionInProgress,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil)

	r := newSessionRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+id.String(), nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id.String())
}

func TestGetSession_HTTP_NotFound(t *testing.T) {
	repo := new(mocks.MockSessionRepo)
	repo.On("GetByID", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	r := newSessionRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestGetSession_HTTP_InvalidID(t *testing.T) {
	r := newSessionRouter(new(mocks.MockSessionRepo))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/nope", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListSessions_HTTP_Pagination(t *testing.T) {
	repo := new(mocks.MockSessionRepo)
	repo.On("List", mock.Anything, 0, 20).Return([]domain.FormSession{}, 42, nil)

	r := newSessionRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Meta struct {
			Total  int `json:"total"`
			Offset int `json:"offset"`
			Limit  int `json:"limit"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 42, resp.Meta.Total)
	assert.Equal(t, 20, resp.Meta.Limit)
}

func TestSaveSession_HTTP_RequiresRecord(t *testing.T) {
	r := newSessionRouter(new(mocks.MockSessionRepo))

	w := postJSON(t, r, "/api/v1/sessions", map[string]interface{}{
		"status": "in_progress",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "RECORD_REQUIRED")
}
