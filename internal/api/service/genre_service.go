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

type GenreService interface {
	List(search string, page, pageSize int) (*dto.Paginated[dto.GenreResponse], error)
	Create(p authz.Principal, in dto.CreateGenreDTO) (*dto.GenreResponse, error)
	Delete(p authz.Principal, slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) List(search string, page, pageSize int) (*dto.Paginated[dto.GenreResponse], error) {
	list, total, err := s.genreRepo.List(search, page, pageSize)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.GenreResponse, 0, len(list))
	for _, g := range list {
		resp = append(resp, dto.GenreFromModel(g))
	}
	return dto.NewPaginated(resp, int(total), page, pageSize), nil
}

func (s *genreService) Create(p authz.Principal, in dto.CreateGenreDTO) (*dto.GenreResponse, error) {
	if err := authz.Require(p, authz.KindGenre, "", authz.ActionCreate); err != nil {
		return nil, err
	}
	if err := validation.Slug(in.Slug); err != nil {
		return nil, err
	}
	if _, err := s.genreRepo.FindBySlug(in.Slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	genre := models.Genre{Name: in.Name, Slug: in.Slug}
	if err := s.genreRepo.Create(&genre); err != nil {
		return nil, err
	}
	resp := dto.GenreFromModel(genre)
	return &resp, nil
}

func (s *genreService) Delete(p authz.Principal, slug string) error {
	if err := authz.Require(p, authz.KindGenre, "", authz.ActionDelete); err != nil {
		return err
	}
	if err := s.genreRepo.DeleteBySlug(slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGenreNotFound
		}
		return err
	}
	return nil
}
