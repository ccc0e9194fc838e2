package service

import (
	"context"
	"errors"
	"strings"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type CategoryService interface {
	List(ctx context.Context, search string, limit, offset int) ([]models.Category, int64, error)
	Create(ctx context.Context, category *models.Category) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context, search string, limit, offset int) ([]models.Category, int64, error) {
	return s.repo.List(ctx, search, limit, offset)
}

func (s *categoryService) Create(ctx context.Context, category *models.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if !slugPattern.MatchString(category.Slug) {
		return NewValidationError("slug", "Enter a valid slug: letters, digits, hyphens and underscores only.")
	}
	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return NewValidationError("slug", "A category with the same 'slug' already exists.")
		}
		return err
	}
	return nil
}

// DeleteBySlug removes the category; referencing titles keep existing with a
// nulled category per the SET NULL constraint.
func (s *categoryService) DeleteBySlug(ctx context.Context, slug string) error {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
