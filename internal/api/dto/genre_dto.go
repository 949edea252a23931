package dto

import "reviewhub/internal/api/models"

// CreateGenreDTO: payload for creating a genre
type CreateGenreDTO struct {
	Name string `json:"name" binding:"required,max=200"`
	Slug string `json:"slug" binding:"required,max=50"`
}

// GenreResponse shapes a genre for API output
type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// GenreFromModel converts a Genre model to its response DTO
func GenreFromModel(g models.Genre) GenreResponse {
	return GenreResponse{Name: g.Name, Slug: g.Slug}
}
