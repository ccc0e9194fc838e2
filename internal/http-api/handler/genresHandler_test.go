package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/http-api/handler"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICE ---

type MockGenreService struct {
	mock.Mock
}

func (m *MockGenreService) List(ctx context.Context, search string, limit, offset int) ([]models.Genre, int64, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Genre), args.Get(1).(int64), args.Error(2)
}

func (m *MockGenreService) Create(ctx context.Context, genre *models.Genre) error {
	args := m.Called(ctx, genre)
	return args.Error(0)
}

func (m *MockGenreService) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

var _ service.GenreService = (*MockGenreService)(nil)

func setupGenreRouter(mockService *MockGenreService, actor *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewGenreHandler(mockService)
	h.RegisterRoutes(r.Group("/v1/genres"), injectUser(actor), middleware.RequireAdmin())
	return r
}

func TestGenreHandler_ListPublic(t *testing.T) {
	mockService := new(MockGenreService)
	router := setupGenreRouter(mockService, nil)

	genres := []models.Genre{{ID: 1, Name: "Drama", Slug: "drama"}}
	mockService.On("List", mock.Anything, "", 10, 0).Return(genres, int64(1), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/genres/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestGenreHandler_ListSearch(t *testing.T) {
	mockService := new(MockGenreService)
	router := setupGenreRouter(mockService, nil)

	mockService.On("List", mock.Anything, "dra", 10, 0).Return([]models.Genre{}, int64(0), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/genres/?search=dra", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestGenreHandler_Create(t *testing.T) {
	mockService := new(MockGenreService)
	router := setupGenreRouter(mockService, adminUser())

	mockService.On("Create", mock.Anything, mock.AnythingOfType("*models.Genre")).Return(nil)

	payload, _ := json.Marshal(gin.H{"name": "Drama", "slug": "drama"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/genres/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestGenreHandler_CreateDuplicateSlug(t *testing.T) {
	mockService := new(MockGenreService)
	router := setupGenreRouter(mockService, adminUser())

	mockService.On("Create", mock.Anything, mock.AnythingOfType("*models.Genre")).
		Return(service.NewValidationError("slug", "A genre with the same 'slug' already exists."))

	payload, _ := json.Marshal(gin.H{"name": "Drama", "slug": "drama"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/genres/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string][]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "slug")
}

func TestGenreHandler_DeleteBySlug(t *testing.T) {
	mockService := new(MockGenreService)
	router := setupGenreRouter(mockService, adminUser())

	mockService.On("DeleteBySlug", mock.Anything, "drama").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/v1/genres/drama/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGenreHandler_DeleteUnknownSlug(t *testing.T) {
	mockService := new(MockGenreService)
	router := setupGenreRouter(mockService, adminUser())

	mockService.On("DeleteBySlug", mock.Anything, "nope").Return(service.ErrGenreNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/v1/genres/nope/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
