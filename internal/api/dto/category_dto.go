package dto

import "reviewhub/internal/api/models"

// CreateCategoryDTO: payload for creating a category
type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required,max=200"`
	Slug string `json:"slug" binding:"required,max=50"`
}

// CategoryResponse shapes a category for API output
type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryFromModel converts a Category model to its response DTO
func CategoryFromModel(c models.Category) CategoryResponse {
	return CategoryResponse{Name: c.Name, Slug: c.Slug}
}
