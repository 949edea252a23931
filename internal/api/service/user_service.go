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

type UserService interface {
	List(p authz.Principal, search string, page, pageSize int) (*dto.Paginated[dto.UserResponse], error)
	Get(p authz.Principal, username string) (*dto.UserResponse, error)
	Create(p authz.Principal, in dto.CreateUserDTO) (*dto.UserResponse, error)
	Update(p authz.Principal, username string, in dto.UpdateUserDTO) (*dto.UserResponse, error)
	Delete(p authz.Principal, username string) error

	// Profile operations act on the caller's own record and bypass the
	// admin gate; role never changes through this path.
	Profile(p authz.Principal) (*dto.UserResponse, error)
	UpdateProfile(p authz.Principal, in dto.UpdateProfileDTO) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(p authz.Principal, search string, page, pageSize int) (*dto.Paginated[dto.UserResponse], error) {
	if err := authz.Require(p, authz.KindUser, "", authz.ActionRead); err != nil {
		return nil, err
	}
	users, total, err := s.userRepo.List(search, page, pageSize)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, *dto.FromModelToUserResponse(&users[i]))
	}
	return dto.NewPaginated(resp, int(total), page, pageSize), nil
}

func (s *userService) Get(p authz.Principal, username string) (*dto.UserResponse, error) {
	if err := authz.Require(p, authz.KindUser, "", authz.ActionRead); err != nil {
		return nil, err
	}
	user, err := s.findUser(username)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) Create(p authz.Principal, in dto.CreateUserDTO) (*dto.UserResponse, error) {
	if err := authz.Require(p, authz.KindUser, "", authz.ActionCreate); err != nil {
		return nil, err
	}
	if err := validation.Username(in.Username); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByUsername(in.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByEmail(in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Bio:       in.Bio,
		Role:      role,
		Active:    true, // admin-created accounts skip email confirmation
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) Update(p authz.Principal, username string, in dto.UpdateUserDTO) (*dto.UserResponse, error) {
	if err := authz.Require(p, authz.KindUser, "", authz.ActionUpdate); err != nil {
		return nil, err
	}
	user, err := s.findUser(username)
	if err != nil {
		return nil, err
	}

	if err := s.applyIdentityChanges(user, in.Username, in.Email); err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Role != nil {
		if err := validation.Role(*in.Role); err != nil {
			return nil, err
		}
		user.Role = *in.Role
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) Delete(p authz.Principal, username string) error {
	if err := authz.Require(p, authz.KindUser, "", authz.ActionDelete); err != nil {
		return err
	}
	if err := s.userRepo.Delete(username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) Profile(p authz.Principal) (*dto.UserResponse, error) {
	if !p.Authenticated() {
		return nil, authz.ErrUnauthenticated
	}
	user, err := s.userRepo.FindByID(p.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) UpdateProfile(p authz.Principal, in dto.UpdateProfileDTO) (*dto.UserResponse, error) {
	if !p.Authenticated() {
		return nil, authz.ErrUnauthenticated
	}
	user, err := s.userRepo.FindByID(p.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.applyIdentityChanges(user, in.Username, in.Email); err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

// applyIdentityChanges validates and applies username/email changes, making
// sure neither already belongs to a different account.
func (s *userService) applyIdentityChanges(user *models.User, username, email *string) error {
	if username != nil && *username != user.Username {
		if err := validation.Username(*username); err != nil {
			return err
		}
		if other, err := s.userRepo.FindByUsername(*username); err == nil && other.ID != user.ID {
			return ErrUsernameTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		user.Username = *username
	}
	if email != nil && *email != user.Email {
		if other, err := s.userRepo.FindByEmail(*email); err == nil && other.ID != user.ID {
			return ErrEmailTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		user.Email = *email
	}
	return nil
}

func (s *userService) findUser(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
