package dto

import "reviewhub/internal/api/models"

// CreateTitleDTO: write payload referencing category and genres by slug
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Year        int      `json:"year" binding:"required"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genres      []string `json:"genre"`
}

// UpdateTitleDTO: partial update; nil fields are left untouched
type UpdateTitleDTO struct {
	Name        *string   `json:"name" binding:"omitempty,max=200"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genres      *[]string `json:"genre"`
}

// TitleResponse embeds the full category/genre objects plus the computed
// rating (absent while the title has no reviews).
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description *string           `json:"description"`
	Genres      []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

// FromModelToTitleResponse converts a Title model plus its computed rating
// to the read DTO.
func FromModelToTitleResponse(title *models.Title, rating *float64) *TitleResponse {
	genres := make([]GenreResponse, 0, len(title.Genres))
	for _, g := range title.Genres {
		genres = append(genres, GenreFromModel(g))
	}

	var category *CategoryResponse
	if title.Category != nil {
		c := CategoryFromModel(*title.Category)
		category = &c
	}

	return &TitleResponse{
		ID:          title.ID,
		Name:        title.Name,
		Year:        title.Year,
		Rating:      rating,
		Description: title.Description,
		Genres:      genres,
		Category:    category,
	}
}
