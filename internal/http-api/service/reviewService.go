package service

import (
	"context"
	"errors"
	"fmt"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID int64, limit, offset int) ([]dto.ReviewResponse, int64, error)
	Create(ctx context.Context, titleID int64, author *models.User, text string, score int) (*dto.ReviewResponse, error)
	Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	Update(ctx context.Context, titleID, reviewID int64, actor *models.User, input dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, titleID, reviewID int64, actor *models.User) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, limit, offset int) ([]dto.ReviewResponse, int64, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}

	reviews, total, err := s.reviewRepo.ListByTitle(titleID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i]))
	}
	return responses, total, nil
}

// Create enforces the one-review-per-user-per-title rule twice: a pre-check
// for a friendly error, and the storage unique index for the concurrent case.
func (s *reviewService) Create(ctx context.Context, titleID int64, author *models.User, text string, score int) (*dto.ReviewResponse, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	if err := validateScore(score); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsByTitleAndAuthor(titleID, author.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, duplicateReviewError()
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: author.ID,
		Text:     text,
		Score:    score,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateReviewError()
		}
		return nil, err
	}

	review.Author = *author
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Update(ctx context.Context, titleID, reviewID int64, actor *models.User, input dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	review, err := s.get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, review.AuthorID) {
		return nil, ErrForbidden
	}

	if input.Score != nil {
		if err := validateScore(*input.Score); err != nil {
			return nil, err
		}
		review.Score = *input.Score
	}
	if input.Text != nil {
		review.Text = *input.Text
	}

	if err := s.reviewRepo.Save(review); err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Delete(ctx context.Context, titleID, reviewID int64, actor *models.User) error {
	review, err := s.get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !canModify(actor, review.AuthorID) {
		return ErrForbidden
	}
	return s.reviewRepo.Delete(review)
}

func (s *reviewService) get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.GetByTitleAndID(titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

// canModify implements the authorship-or-elevated-role rule.
func canModify(actor *models.User, authorID string) bool {
	return actor.ID == authorID || actor.IsModerator() || actor.IsAdmin()
}

func validateScore(score int) error {
	if score < models.MinScore || score > models.MaxScore {
		return NewValidationError("score", fmt.Sprintf("Score must be between %d and %d.", models.MinScore, models.MaxScore))
	}
	return nil
}

func duplicateReviewError() ValidationError {
	return NewValidationError("review", "only one review per user per title")
}
