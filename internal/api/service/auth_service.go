package service

import (
	"context"
	"errors"
	"time"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/validation"
	"reviewhub/internal/confirmation"
	"reviewhub/internal/mailer"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

const confirmationSubject = "Your API confirmation code"

// Claims is the JWT payload of an issued access token. Superuser travels in
// the token because admin powers derive from role OR the elevated flag, and
// the middleware has only the claims to rebuild the principal from.
type Claims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Superuser bool   `json:"superuser,omitempty"`
	jwt.RegisteredClaims
}

type AuthService interface {
	SignUp(ctx context.Context, in dto.SignUpRequest) (*dto.SignUpResponse, error)
	IssueToken(ctx context.Context, in dto.TokenRequest) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo repository.UserRepository
	codes    confirmation.Service
	mail     mailer.Client

	jwtSecret      string
	accessTokenTTL time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	codes confirmation.Service,
	mail mailer.Client,
	jwtSecret string,
	accessTokenTTL time.Duration,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		codes:          codes,
		mail:           mail,
		jwtSecret:      jwtSecret,
		accessTokenTTL: accessTokenTTL,
	}
}

// SignUp validates the (username, email) pair, creates or reuses the matching
// account and emails a fresh confirmation code. Repeating the same payload is
// idempotent: the existing account simply gets a new code.
func (s *authService) SignUp(ctx context.Context, in dto.SignUpRequest) (*dto.SignUpResponse, error) {
	if err := validation.Username(in.Username); err != nil {
		return nil, err
	}

	byName, err := s.userRepo.FindByUsername(in.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if byName != nil && byName.Email != in.Email {
		return nil, ErrUsernameOtherEmail
	}

	byEmail, err := s.userRepo.FindByEmail(in.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if byEmail != nil && byEmail.Username != in.Username {
		return nil, ErrEmailOtherUsername
	}

	user := byName
	if user == nil {
		user = &models.User{
			Username: in.Username,
			Email:    in.Email,
			Role:     models.RoleUser,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
	}

	code, err := s.codes.Generate(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	body, err := mailer.ConfirmationBody(user.Username, code)
	if err != nil {
		return nil, err
	}
	if err := s.mail.Send(user.Email, confirmationSubject, body); err != nil {
		return nil, err
	}

	return &dto.SignUpResponse{Email: in.Email, Username: in.Username}, nil
}

// IssueToken exchanges a confirmation code for a bearer access token and
// marks the account confirmed.
func (s *authService) IssueToken(ctx context.Context, in dto.TokenRequest) (string, error) {
	user, err := s.userRepo.FindByUsername(in.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if err := s.codes.Verify(ctx, user.ID, in.ConfirmationCode); err != nil {
		if errors.Is(err, confirmation.ErrCodeMismatch) || errors.Is(err, confirmation.ErrCodeExpired) {
			return "", ErrBadConfirmationCode
		}
		return "", err
	}

	if !user.Active {
		user.Active = true
		if err := s.userRepo.Update(user); err != nil {
			return "", err
		}
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Superuser: user.Superuser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
