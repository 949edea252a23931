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

type ReviewService interface {
	ListByTitle(titleID int64, page, pageSize int) (*dto.Paginated[dto.ReviewResponse], error)
	Get(titleID, reviewID int64) (*dto.ReviewResponse, error)
	Create(p authz.Principal, titleID int64, in dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	Update(p authz.Principal, titleID, reviewID int64, in dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	Delete(p authz.Principal, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, titleRepo: titleRepo}
}

func (s *reviewService) ListByTitle(titleID int64, page, pageSize int) (*dto.Paginated[dto.ReviewResponse], error) {
	if err := s.checkTitle(titleID); err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.GetByTitle(titleID, page, pageSize)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, *dto.FromModelToReviewResponse(&reviews[i]))
	}
	return dto.NewPaginated(resp, int(total), page, pageSize), nil
}

func (s *reviewService) Get(titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.resolve(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Create(p authz.Principal, titleID int64, in dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if err := s.checkTitle(titleID); err != nil {
		return nil, err
	}
	if err := authz.Require(p, authz.KindReview, "", authz.ActionCreate); err != nil {
		return nil, err
	}
	if err := validation.Score(in.Score); err != nil {
		return nil, err
	}

	// creation-only rule: edits never trip this
	exists, err := s.reviewRepo.ExistsByAuthorAndTitle(p.ID, titleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrReviewExists
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: p.ID,
		Text:     in.Text,
		Score:    in.Score,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	// reload with the author association for response shaping
	review, err = s.reviewRepo.GetByID(review.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Update(p authz.Principal, titleID, reviewID int64, in dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	review, err := s.resolve(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(p, authz.KindReview, review.AuthorID, authz.ActionUpdate); err != nil {
		return nil, err
	}

	if in.Text != nil {
		review.Text = *in.Text
	}
	if in.Score != nil {
		if err := validation.Score(*in.Score); err != nil {
			return nil, err
		}
		review.Score = *in.Score
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Delete(p authz.Principal, titleID, reviewID int64) error {
	review, err := s.resolve(titleID, reviewID)
	if err != nil {
		return err
	}
	if err := authz.Require(p, authz.KindReview, review.AuthorID, authz.ActionDelete); err != nil {
		return err
	}
	return s.reviewRepo.Delete(review.ID)
}

func (s *reviewService) checkTitle(titleID int64) error {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

// resolve loads the review and verifies it belongs to the title named in the
// path; a mismatched chain reads as not found.
func (s *reviewService) resolve(titleID, reviewID int64) (*models.Review, error) {
	if err := s.checkTitle(titleID); err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.TitleID != titleID {
		return nil, ErrReviewNotFound
	}
	return review, nil
}
