package service

import (
	"context"
	"errors"
	"time"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type TitleService interface {
	List(ctx context.Context, filters repository.TitleFilters, limit, offset int) ([]dto.TitleResponse, int64, error)
	Get(ctx context.Context, id int64) (*dto.TitleResponse, error)
	Create(ctx context.Context, input dto.CreateTitleDTO) (*dto.TitleResponse, error)
	PartialUpdate(ctx context.Context, id int64, input dto.UpdateTitleDTO) (*dto.TitleResponse, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	genreRepo    repository.GenreRepository
	categoryRepo repository.CategoryRepository
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	genreRepo repository.GenreRepository,
	categoryRepo repository.CategoryRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		genreRepo:    genreRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *titleService) List(ctx context.Context, filters repository.TitleFilters, limit, offset int) ([]dto.TitleResponse, int64, error) {
	titles, total, err := s.titleRepo.List(ctx, filters, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(titles))
	for _, t := range titles {
		ids = append(ids, t.ID)
	}
	ratings, err := s.titleRepo.RatingsFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		responses = append(responses, *dto.FromModelToTitleResponse(&titles[i], ratingFor(ratings, titles[i].ID)))
	}
	return responses, total, nil
}

func (s *titleService) Get(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	ratings, err := s.titleRepo.RatingsFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	return dto.FromModelToTitleResponse(title, ratingFor(ratings, id)), nil
}

func (s *titleService) Create(ctx context.Context, input dto.CreateTitleDTO) (*dto.TitleResponse, error) {
	ve := ValidationError{}
	validateTitleName(ve, input.Name)
	validateTitleYear(ve, input.Year)
	if len(ve) > 0 {
		return nil, ve
	}

	category, err := s.resolveCategory(ctx, input.Category)
	if err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, input.Genre)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		CategoryID:  &category.ID,
	}
	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}
	if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
		return nil, err
	}

	title.Category = category
	title.Genres = genres
	return dto.FromModelToTitleResponse(title, nil), nil
}

// PartialUpdate applies the provided fields; full replacement is not offered
// anywhere in the API.
func (s *titleService) PartialUpdate(ctx context.Context, id int64, input dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	ve := ValidationError{}
	if input.Name != nil {
		validateTitleName(ve, *input.Name)
	}
	if input.Year != nil {
		validateTitleYear(ve, *input.Year)
	}
	if len(ve) > 0 {
		return nil, ve
	}

	if input.Category != nil {
		category, err := s.resolveCategory(ctx, *input.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	var genres []models.Genre
	replaceGenres := false
	if input.Genre != nil {
		genres, err = s.resolveGenres(ctx, *input.Genre)
		if err != nil {
			return nil, err
		}
		replaceGenres = true
	}

	if input.Name != nil {
		title.Name = *input.Name
	}
	if input.Year != nil {
		title.Year = *input.Year
	}
	if input.Description != nil {
		title.Description = *input.Description
	}

	if err := s.titleRepo.Save(ctx, title); err != nil {
		return nil, err
	}
	if replaceGenres {
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
		title.Genres = genres
	}

	ratings, err := s.titleRepo.RatingsFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	return dto.FromModelToTitleResponse(title, ratingFor(ratings, id)), nil
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return s.titleRepo.Delete(ctx, title)
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("category", "The specified category does not exist.")
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	unique := make(map[string]struct{}, len(slugs))
	deduped := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if _, seen := unique[slug]; !seen {
			unique[slug] = struct{}{}
			deduped = append(deduped, slug)
		}
	}

	genres, err := s.genreRepo.GetBySlugs(ctx, deduped)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(deduped) {
		return nil, NewValidationError("genre", "The specified genre does not exist.")
	}
	return genres, nil
}

func validateTitleName(ve ValidationError, name string) {
	if len(name) > models.TitleNameMaxLen {
		ve.Add("name", "The title name cannot be longer than 256 characters.")
	}
}

func validateTitleYear(ve ValidationError, year int) {
	if year > time.Now().Year() {
		ve.Add("year", "The year cannot be greater than the current year.")
	}
}

func ratingFor(ratings map[int64]float64, titleID int64) *float64 {
	if rating, ok := ratings[titleID]; ok {
		return &rating
	}
	return nil
}
