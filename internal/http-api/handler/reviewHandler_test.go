package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/handler"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICE ---

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListByTitle(ctx context.Context, titleID int64, limit, offset int) ([]dto.ReviewResponse, int64, error) {
	args := m.Called(ctx, titleID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]dto.ReviewResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewService) Create(ctx context.Context, titleID int64, author *models.User, text string, score int) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, titleID, author, text, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, titleID, reviewID int64, actor *models.User, input dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, titleID, reviewID, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, titleID, reviewID int64, actor *models.User) error {
	args := m.Called(ctx, titleID, reviewID, actor)
	return args.Error(0)
}

var _ service.ReviewService = (*MockReviewService)(nil)

// --- SETUP ---

func setupReviewRouter(mockService *MockReviewService, actor *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewReviewHandler(mockService)
	h.RegisterRoutes(r.Group("/v1/titles"), injectUser(actor))
	return r
}

func TestReviewHandler_ListPublic(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService, nil)

	reviews := []dto.ReviewResponse{{ID: 1, Title: 7, Author: "alice", Text: "good", Score: 8, PubDate: time.Now()}}
	mockService.On("ListByTitle", mock.Anything, int64(7), 10, 0).Return(reviews, int64(1), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/titles/7/reviews/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestReviewHandler_CreateUnauthenticated(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService, nil)

	payload, _ := json.Marshal(gin.H{"text": "good", "score": 8})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/titles/7/reviews/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewHandler_Create(t *testing.T) {
	mockService := new(MockReviewService)
	author := plainUser()
	router := setupReviewRouter(mockService, author)

	created := &dto.ReviewResponse{ID: 1, Title: 7, Author: "alice", Text: "good", Score: 8}
	mockService.On("Create", mock.Anything, int64(7), author, "good", 8).Return(created, nil)

	payload, _ := json.Marshal(gin.H{"text": "good", "score": 8})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/titles/7/reviews/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestReviewHandler_CreateDuplicate(t *testing.T) {
	mockService := new(MockReviewService)
	author := plainUser()
	router := setupReviewRouter(mockService, author)

	mockService.On("Create", mock.Anything, int64(7), author, "again", 8).
		Return(nil, service.NewValidationError("review", "only one review per user per title"))

	payload, _ := json.Marshal(gin.H{"text": "again", "score": 8})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/titles/7/reviews/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string][]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "review")
}

func TestReviewHandler_DeleteForbidden(t *testing.T) {
	mockService := new(MockReviewService)
	actor := plainUser()
	router := setupReviewRouter(mockService, actor)

	mockService.On("Delete", mock.Anything, int64(7), int64(3), actor).Return(service.ErrForbidden)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/v1/titles/7/reviews/3/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
