package dto

import (
	"time"

	"reviewhub/internal/http-api/models"
)

// CreateReviewDTO for POST /v1/titles/{title_id}/reviews
type CreateReviewDTO struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required"`
}

// UpdateReviewDTO for PATCH; nil means "leave unchanged"
type UpdateReviewDTO struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// ReviewResponse: author is rendered by username, title by id
type ReviewResponse struct {
	ID      int64     `json:"id"`
	Title   int64     `json:"title"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:      review.ID,
		Title:   review.TitleID,
		Author:  review.Author.Username,
		Text:    review.Text,
		Score:   review.Score,
		PubDate: review.PubDate,
	}
}
