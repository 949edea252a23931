package service

import (
	"testing"

	"reviewhub/internal/api/authz"
	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

var (
	reviewAuthor = authz.Principal{ID: "u-1", Username: "bob", Role: models.RoleUser}
	otherUser    = authz.Principal{ID: "u-2", Username: "eve", Role: models.RoleUser}
	modPrincipal = authz.Principal{ID: "m-1", Username: "mod", Role: models.RoleModerator}
)

func newReviewFixture() (*MockReviewRepository, *MockTitleRepository, ReviewService) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	return reviewRepo, titleRepo, NewReviewService(reviewRepo, titleRepo)
}

func TestCreateReview_Success(t *testing.T) {
	reviewRepo, titleRepo, svc := newReviewFixture()

	titleRepo.On("GetByID", int64(7)).Return(&models.Title{ID: 7}, nil)
	reviewRepo.On("ExistsByAuthorAndTitle", "u-1", int64(7)).Return(false, nil)
	reviewRepo.On("Create", mock.AnythingOfType("*models.Review")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Review).ID = 11
	})
	reviewRepo.On("GetByID", int64(11)).Return(&models.Review{
		ID: 11, TitleID: 7, AuthorID: "u-1", Text: "great", Score: 9,
		Author: models.User{Username: "bob"},
	}, nil)

	resp, err := svc.Create(reviewAuthor, 7, dto.CreateReviewDTO{Text: "great", Score: 9})

	assert.NoError(t, err)
	assert.Equal(t, "bob", resp.Author)
	assert.Equal(t, 9, resp.Score)
	reviewRepo.AssertExpectations(t)
}

func TestCreateReview_SecondReviewRejected(t *testing.T) {
	reviewRepo, titleRepo, svc := newReviewFixture()

	titleRepo.On("GetByID", int64(7)).Return(&models.Title{ID: 7}, nil)
	reviewRepo.On("ExistsByAuthorAndTitle", "u-1", int64(7)).Return(true, nil)

	// rejected regardless of score or text content
	_, err := svc.Create(reviewAuthor, 7, dto.CreateReviewDTO{Text: "changed my mind", Score: 2})

	assert.ErrorIs(t, err, ErrReviewExists)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateReview_TitleMissing(t *testing.T) {
	_, titleRepo, svc := newReviewFixture()

	titleRepo.On("GetByID", int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(reviewAuthor, 404, dto.CreateReviewDTO{Text: "x", Score: 5})

	assert.ErrorIs(t, err, ErrTitleNotFound)
}

func TestCreateReview_Anonymous(t *testing.T) {
	_, titleRepo, svc := newReviewFixture()

	titleRepo.On("GetByID", int64(7)).Return(&models.Title{ID: 7}, nil)

	_, err := svc.Create(authz.Anonymous(), 7, dto.CreateReviewDTO{Text: "x", Score: 5})

	assert.ErrorIs(t, err, authz.ErrUnauthenticated)
}

func TestCreateReview_ScoreOutOfRange(t *testing.T) {
	reviewRepo, titleRepo, svc := newReviewFixture()

	titleRepo.On("GetByID", int64(7)).Return(&models.Title{ID: 7}, nil)

	for _, score := range []int{0, 11} {
		_, err := svc.Create(reviewAuthor, 7, dto.CreateReviewDTO{Text: "x", Score: score})
		var fieldErr *validation.FieldError
		assert.ErrorAs(t, err, &fieldErr, score)
		assert.Equal(t, "score", fieldErr.Field)
	}
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUpdateReview_NonOwnerForbidden(t *testing.T) {
	reviewRepo, titleRepo, svc := newReviewFixture()

	titleRepo.On("GetByID", int64(7)).Return(&models.Title{ID: 7}, nil)
	reviewRepo.On("GetByID", int64(11)).Return(&models.Review{ID: 11, TitleID: 7, AuthorID: "u-1"}, nil)

	text := "hijacked"
	_, err := svc.Update(otherUser, 7, 11, dto.UpdateReviewDTO{Text: &text})

	assert.ErrorIs(t, err, authz.ErrForbidden)
	reviewRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdateReview_ModeratorAllowed(t *testing.T) {
	reviewRepo, titleRepo, svc := newReviewFixture()

	review := &models.Review{ID: 11, TitleID: 7, AuthorID: "u-1", Text: "spam", Score: 10, Author: models.User{Username: "bob"}}
	titleRepo.On("GetByID", int64(7)).Return(&models.Title{ID: 7}, nil)
	reviewRepo.On("GetByID", int64(11)).Return(review, nil)
	reviewRepo.On("Update", review).Return(nil)

	text := "moderated"
	resp, err := svc.Update(modPrincipal, 7, 11, dto.UpdateReviewDTO{Text: &text})

	assert.NoError(t, err)
	assert.Equal(t, "moderated", resp.Text)
}

func TestUpdateReview_NoDuplicateCheckOnEdit(t *testing.T) {
	reviewRepo, titleRepo, svc := newReviewFixture()

	review := &models.Review{ID: 11, TitleID: 7, AuthorID: "u-1", Score: 5, Author: models.User{Username: "bob"}}
	titleRepo.On("GetByID", int64(7)).Return(&models.Title{ID: 7}, nil)
	reviewRepo.On("GetByID", int64(11)).Return(review, nil)
	reviewRepo.On("Update", review).Return(nil)

	score := 8
	_, err := svc.Update(reviewAuthor, 7, 11, dto.UpdateReviewDTO{Score: &score})

	assert.NoError(t, err)
	reviewRepo.AssertNotCalled(t, "ExistsByAuthorAndTitle", mock.Anything, mock.Anything)
}

func TestGetReview_WrongTitleChain(t *testing.T) {
	reviewRepo, titleRepo, svc := newReviewFixture()

	titleRepo.On("GetByID", int64(8)).Return(&models.Title{ID: 8}, nil)
	reviewRepo.On("GetByID", int64(11)).Return(&models.Review{ID: 11, TitleID: 7}, nil)

	// review 11 belongs to title 7, path says title 8
	_, err := svc.Get(8, 11)

	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestDeleteReview_Owner(t *testing.T) {
	reviewRepo, titleRepo, svc := newReviewFixture()

	titleRepo.On("GetByID", int64(7)).Return(&models.Title{ID: 7}, nil)
	reviewRepo.On("GetByID", int64(11)).Return(&models.Review{ID: 11, TitleID: 7, AuthorID: "u-1"}, nil)
	reviewRepo.On("Delete", int64(11)).Return(nil)

	assert.NoError(t, svc.Delete(reviewAuthor, 7, 11))
	reviewRepo.AssertExpectations(t)
}
