package service

import (
	"errors"

	"reviewhub/internal/api/authz"
	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/validation"

	"gorm.io/gorm"
)

type CategoryService interface {
	List(search string, page, pageSize int) (*dto.Paginated[dto.CategoryResponse], error)
	Create(p authz.Principal, in dto.CreateCategoryDTO) (*dto.CategoryResponse, error)
	Delete(p authz.Principal, slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(search string, page, pageSize int) (*dto.Paginated[dto.CategoryResponse], error) {
	list, total, err := s.categoryRepo.List(search, page, pageSize)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		resp = append(resp, dto.CategoryFromModel(c))
	}
	return dto.NewPaginated(resp, int(total), page, pageSize), nil
}

func (s *categoryService) Create(p authz.Principal, in dto.CreateCategoryDTO) (*dto.CategoryResponse, error) {
	if err := authz.Require(p, authz.KindCategory, "", authz.ActionCreate); err != nil {
		return nil, err
	}
	if err := validation.Slug(in.Slug); err != nil {
		return nil, err
	}
	if _, err := s.categoryRepo.FindBySlug(in.Slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := models.Category{Name: in.Name, Slug: in.Slug}
	if err := s.categoryRepo.Create(&category); err != nil {
		return nil, err
	}
	resp := dto.CategoryFromModel(category)
	return &resp, nil
}

func (s *categoryService) Delete(p authz.Principal, slug string) error {
	if err := authz.Require(p, authz.KindCategory, "", authz.ActionDelete); err != nil {
		return err
	}
	if err := s.categoryRepo.DeleteBySlug(slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
