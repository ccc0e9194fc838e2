package repository

import (
	"context"

	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

// TitleFilters is the set of optional list filters; zero values mean "no filter".
type TitleFilters struct {
	Category string // category slug
	Genre    string // genre slug
	Name     string // substring match
	Year     *int
}

type TitleRepository interface {
	Create(ctx context.Context, title *models.Title) error
	Save(ctx context.Context, title *models.Title) error
	Delete(ctx context.Context, title *models.Title) error
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	List(ctx context.Context, filters TitleFilters, limit, offset int) ([]models.Title, int64, error)
	ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error
	RatingsFor(ctx context.Context, titleIDs []int64) (map[int64]float64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title) error {
	return r.db.WithContext(ctx).Create(title).Error
}

func (r *titleRepository) Save(ctx context.Context, title *models.Title) error {
	return r.db.WithContext(ctx).Omit("Genres", "Category").Save(title).Error
}

func (r *titleRepository) Delete(ctx context.Context, title *models.Title) error {
	// Reviews (and their comments) cascade at the storage layer.
	return r.db.WithContext(ctx).Select("Genres").Delete(title).Error
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var title models.Title
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres").
		First(&title, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &title, nil
}

// List applies the optional filters and returns a page of titles plus the
// total match count.
func (r *titleRepository) List(ctx context.Context, filters TitleFilters, limit, offset int) ([]models.Title, int64, error) {
	var titles []models.Title
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Title{})
	if filters.Category != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filters.Category)
	}
	if filters.Genre != "" {
		q = q.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filters.Genre)
	}
	if filters.Name != "" {
		q = q.Where("titles.name ILIKE ?", "%"+filters.Name+"%")
	}
	if filters.Year != nil {
		q = q.Where("titles.year = ?", *filters.Year)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Category").
		Preload("Genres").
		Order("titles.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&titles).Error
	if err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error {
	return r.db.WithContext(ctx).Model(title).Association("Genres").Replace(genres)
}

// RatingsFor computes AVG(score) per title in one grouped query. Titles with
// no reviews are absent from the map.
func (r *titleRepository) RatingsFor(ctx context.Context, titleIDs []int64) (map[int64]float64, error) {
	ratings := make(map[int64]float64, len(titleIDs))
	if len(titleIDs) == 0 {
		return ratings, nil
	}

	var rows []struct {
		TitleID int64
		Rating  float64
	}
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("title_id, AVG(score) AS rating").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		ratings[row.TitleID] = row.Rating
	}
	return ratings, nil
}
