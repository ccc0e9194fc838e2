package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

type GenreService interface {
	List(ctx context.Context, search string, limit, offset int) ([]models.Genre, int64, error)
	Create(ctx context.Context, genre *models.Genre) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type genreService struct {
	repo repository.GenreRepository
}

func NewGenreService(repo repository.GenreRepository) GenreService {
	return &genreService{repo: repo}
}

func (s *genreService) List(ctx context.Context, search string, limit, offset int) ([]models.Genre, int64, error) {
	return s.repo.List(ctx, search, limit, offset)
}

func (s *genreService) Create(ctx context.Context, genre *models.Genre) error {
	genre.Name = strings.TrimSpace(genre.Name)
	if !slugPattern.MatchString(genre.Slug) {
		return NewValidationError("slug", "Enter a valid slug: letters, digits, hyphens and underscores only.")
	}
	if err := s.repo.Create(ctx, genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return NewValidationError("slug", "A genre with the same 'slug' already exists.")
		}
		return err
	}
	return nil
}

func (s *genreService) DeleteBySlug(ctx context.Context, slug string) error {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGenreNotFound
		}
		return err
	}
	return nil
}
