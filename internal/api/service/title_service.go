package service

import (
	"errors"
	"time"

	"reviewhub/internal/api/authz"
	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/validation"

	"gorm.io/gorm"
)

type TitleService interface {
	List(filter repository.TitleFilter, page, pageSize int) (*dto.Paginated[dto.TitleResponse], error)
	Get(id int64) (*dto.TitleResponse, error)
	Create(p authz.Principal, in dto.CreateTitleDTO) (*dto.TitleResponse, error)
	Update(p authz.Principal, id int64, in dto.UpdateTitleDTO) (*dto.TitleResponse, error)
	Delete(p authz.Principal, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	now          func() time.Time
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		now:          time.Now,
	}
}

func (s *titleService) List(filter repository.TitleFilter, page, pageSize int) (*dto.Paginated[dto.TitleResponse], error) {
	titles, total, err := s.titleRepo.List(filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(titles))
	for _, t := range titles {
		ids = append(ids, t.ID)
	}
	ratings, err := s.titleRepo.AverageRatings(ids)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		var rating *float64
		if avg, ok := ratings[titles[i].ID]; ok {
			rating = &avg
		}
		resp = append(resp, *dto.FromModelToTitleResponse(&titles[i], rating))
	}
	return dto.NewPaginated(resp, int(total), page, pageSize), nil
}

func (s *titleService) Get(id int64) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}
	rating, err := s.titleRepo.AverageRating(id)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToTitleResponse(title, rating), nil
}

func (s *titleService) Create(p authz.Principal, in dto.CreateTitleDTO) (*dto.TitleResponse, error) {
	if err := authz.Require(p, authz.KindTitle, "", authz.ActionCreate); err != nil {
		return nil, err
	}
	// the year check runs against the clock at request time
	if err := validation.Year(in.Year, s.now()); err != nil {
		return nil, err
	}

	title := models.Title{
		Name:        in.Name,
		Year:        in.Year,
		Description: in.Description,
	}

	if in.Category != nil {
		category, err := s.resolveCategory(*in.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	genres, err := s.resolveGenres(in.Genres)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titleRepo.Create(&title); err != nil {
		return nil, err
	}
	return s.Get(title.ID)
}

func (s *titleService) Update(p authz.Principal, id int64, in dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	if err := authz.Require(p, authz.KindTitle, "", authz.ActionUpdate); err != nil {
		return nil, err
	}

	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	if in.Name != nil {
		title.Name = *in.Name
	}
	if in.Year != nil {
		if err := validation.Year(*in.Year, s.now()); err != nil {
			return nil, err
		}
		title.Year = *in.Year
	}
	if in.Description != nil {
		title.Description = in.Description
	}
	if in.Category != nil {
		category, err := s.resolveCategory(*in.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	if in.Genres != nil {
		genres, err := s.resolveGenres(*in.Genres)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(title, genres); err != nil {
			return nil, err
		}
	}

	// Save without the preloaded associations touching the join table again
	title.Genres = nil
	title.Category = nil
	if err := s.titleRepo.Update(title); err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *titleService) Delete(p authz.Principal, id int64) error {
	if err := authz.Require(p, authz.KindTitle, "", authz.ActionDelete); err != nil {
		return err
	}
	if err := s.titleRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

func (s *titleService) resolveCategory(slug string) (*models.Category, error) {
	category, err := s.categoryRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validation.NewFieldError("category", "unknown category slug")
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) resolveGenres(slugs []string) ([]models.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	genres, err := s.genreRepo.FindBySlugs(slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(uniqueStrings(slugs)) {
		return nil, validation.NewFieldError("genre", "unknown genre slug")
	}
	return genres, nil
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0:0]
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
