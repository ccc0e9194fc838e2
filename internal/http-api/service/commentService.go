package service

import (
	"errors"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	ListByReview(titleID, reviewID int64, limit, offset int) ([]dto.CommentResponse, int64, error)
	Create(titleID, reviewID int64, author *models.User, text string) (*dto.CommentResponse, error)
	Get(titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	Update(titleID, reviewID, commentID int64, actor *models.User, text string) (*dto.CommentResponse, error)
	Delete(titleID, reviewID, commentID int64, actor *models.User) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *commentService) ListByReview(titleID, reviewID int64, limit, offset int) ([]dto.CommentResponse, int64, error) {
	if err := s.requireReview(titleID, reviewID); err != nil {
		return nil, 0, err
	}

	comments, total, err := s.commentRepo.ListByReview(reviewID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i]))
	}
	return responses, total, nil
}

func (s *commentService) Create(titleID, reviewID int64, author *models.User, text string) (*dto.CommentResponse, error) {
	if err := s.requireReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: author.ID,
		Text:     text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	comment.Author = *author
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Get(titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.get(titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Update(titleID, reviewID, commentID int64, actor *models.User, text string) (*dto.CommentResponse, error) {
	comment, err := s.get(titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, comment.AuthorID) {
		return nil, ErrForbidden
	}

	comment.Text = text
	if err := s.commentRepo.Save(comment); err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Delete(titleID, reviewID, commentID int64, actor *models.User) error {
	comment, err := s.get(titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if !canModify(actor, comment.AuthorID) {
		return ErrForbidden
	}
	return s.commentRepo.Delete(comment)
}

func (s *commentService) get(titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.requireReview(titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByReviewAndID(reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

// requireReview checks the review exists under the given title, so a comment
// can't be reached through the wrong parent path.
func (s *commentService) requireReview(titleID, reviewID int64) error {
	if _, err := s.reviewRepo.GetByTitleAndID(titleID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}
