package service

import (
	"errors"

	"reviewhub/internal/api/authz"
	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	ListByReview(titleID, reviewID int64, page, pageSize int) (*dto.Paginated[dto.CommentResponse], error)
	Get(titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	Create(p authz.Principal, titleID, reviewID int64, in dto.CreateCommentDTO) (*dto.CommentResponse, error)
	Update(p authz.Principal, titleID, reviewID, commentID int64, in dto.UpdateCommentDTO) (*dto.CommentResponse, error)
	Delete(p authz.Principal, titleID, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	titleRepo   repository.TitleRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	reviewRepo repository.ReviewRepository,
	titleRepo repository.TitleRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		titleRepo:   titleRepo,
	}
}

func (s *commentService) ListByReview(titleID, reviewID int64, page, pageSize int) (*dto.Paginated[dto.CommentResponse], error) {
	if _, err := s.resolveReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.GetByReview(reviewID, page, pageSize)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, *dto.FromModelToCommentResponse(&comments[i]))
	}
	return dto.NewPaginated(resp, int(total), page, pageSize), nil
}

func (s *commentService) Get(titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.resolveComment(titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Create(p authz.Principal, titleID, reviewID int64, in dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	if _, err := s.resolveReview(titleID, reviewID); err != nil {
		return nil, err
	}
	if err := authz.Require(p, authz.KindComment, "", authz.ActionCreate); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: p.ID,
		Text:     in.Text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(comment.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Update(p authz.Principal, titleID, reviewID, commentID int64, in dto.UpdateCommentDTO) (*dto.CommentResponse, error) {
	comment, err := s.resolveComment(titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(p, authz.KindComment, comment.AuthorID, authz.ActionUpdate); err != nil {
		return nil, err
	}

	if in.Text != nil {
		comment.Text = *in.Text
	}
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Delete(p authz.Principal, titleID, reviewID, commentID int64) error {
	comment, err := s.resolveComment(titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := authz.Require(p, authz.KindComment, comment.AuthorID, authz.ActionDelete); err != nil {
		return err
	}
	return s.commentRepo.Delete(comment.ID)
}

// resolveReview walks the title/review segment of the path; a review hanging
// off a different title reads as not found.
func (s *commentService) resolveReview(titleID, reviewID int64) (*models.Review, error) {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
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

func (s *commentService) resolveComment(titleID, reviewID, commentID int64) (*models.Comment, error) {
	if _, err := s.resolveReview(titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.ReviewID != reviewID {
		return nil, ErrCommentNotFound
	}
	return comment, nil
}
