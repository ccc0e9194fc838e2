package dto

import "reviewhub/internal/http-api/models"

// CreateTitleDTO: write representation takes genre slugs and a category slug
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required"`
	Year        int      `json:"year" binding:"required"`
	Description string   `json:"description"`
	Genre       []string `json:"genre" binding:"required"`
	Category    string   `json:"category" binding:"required"`
}

// UpdateTitleDTO for PATCH; nil means "leave unchanged"
type UpdateTitleDTO struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Genre       *[]string `json:"genre"`
	Category    *string   `json:"category"`
}

// TitleResponse: read representation with the computed rating (null when the
// title has no reviews)
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description string            `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

func FromModelToTitleResponse(title *models.Title, rating *float64) *TitleResponse {
	resp := &TitleResponse{
		ID:          title.ID,
		Name:        title.Name,
		Year:        title.Year,
		Rating:      rating,
		Description: title.Description,
		Genre:       make([]GenreResponse, 0, len(title.Genres)),
	}
	for _, g := range title.Genres {
		resp.Genre = append(resp.Genre, GenreFromModel(g))
	}
	if title.Category != nil {
		category := CategoryFromModel(*title.Category)
		resp.Category = &category
	}
	return resp
}
