package repository

import (
	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	Save(review *models.Review) error
	Delete(review *models.Review) error
	GetByTitleAndID(titleID, id int64) (*models.Review, error)
	ExistsByTitleAndAuthor(titleID int64, authorID string) (bool, error)
	ListByTitle(titleID int64, limit, offset int) ([]models.Review, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	// The (title_id, author_id) unique index rejects a concurrent duplicate
	// here; TranslateError turns that into gorm.ErrDuplicatedKey.
	return r.db.Omit("Author", "Title").Create(review).Error
}

func (r *reviewRepository) Save(review *models.Review) error {
	return r.db.Omit("Author", "Title").Save(review).Error
}

func (r *reviewRepository) Delete(review *models.Review) error {
	return r.db.Delete(review).Error
}

// GetByTitleAndID scopes the lookup to the parent title so a review can't be
// addressed through another title's URL.
func (r *reviewRepository) GetByTitleAndID(titleID, id int64) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("title_id = ? AND id = ?", titleID, id).
		Preload("Author").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ExistsByTitleAndAuthor(titleID int64, authorID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) ListByTitle(titleID int64, limit, offset int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.db.Model(&models.Review{}).Where("title_id = ?", titleID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("title_id = ?", titleID).
		Preload("Author").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}
