package services

import (
	"errors"
	"fmt"
	"time"

	"review-catalogue-api/config"
	"review-catalogue-api/models"
	"review-catalogue-api/repositories"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService interface {
	Signup(req models.SignupRequest) (*models.SignupRequest, error)
	ObtainToken(req models.TokenRequest) (*models.TokenResponse, error)
}

type authService struct {
	userRepo repositories.UserRepository
	mailer   Mailer
	codes    *ConfirmationCodes
}

func NewAuthService(userRepo repositories.UserRepository, mailer Mailer, codes *ConfirmationCodes) AuthService {
	return &authService{userRepo: userRepo, mailer: mailer, codes: codes}
}

// Signup gets or creates a user by the exact (email, username) pair and
// mails them a confirmation code. Re-signup with the same pair re-issues
// a code; a partial collision is a conflict.
func (s *authService) Signup(req models.SignupRequest) (*models.SignupRequest, error) {
	if req.Username == models.ReservedUsername {
		return nil, fmt.Errorf("%w: username %q is reserved", models.ErrValidation, models.ReservedUsername)
	}

	user, err := s.userRepo.GetByUsername(req.Username)
	switch {
	case err == nil:
		if user.Email != req.Email {
			return nil, fmt.Errorf("%w: username already registered with another email", models.ErrConflict)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
			return nil, fmt.Errorf("%w: email already registered with another username", models.ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		user = &models.User{
			Username:           req.Username,
			Email:              req.Email,
			Role:               models.RoleUser,
			ConfirmationSecret: uuid.NewString(),
		}
		if err := s.userRepo.Create(user); err != nil {
			// Lost a race against a concurrent signup for the same pair.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("%w: email or username already registered", models.ErrConflict)
			}
			return nil, err
		}
	default:
		return nil, err
	}

	code := s.codes.Make(user)
	if err := s.mailer.Send(user.Email, "Confirmation code", "Your confirmation code: "+code); err != nil {
		return nil, err
	}

	return &req, nil
}

// ObtainToken exchanges a valid confirmation code for a bearer token.
func (s *authService) ObtainToken(req models.TokenRequest) (*models.TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", models.ErrNotFound, req.Username)
		}
		return nil, err
	}

	if !s.codes.Check(user, req.ConfirmationCode) {
		return nil, fmt.Errorf("%w: invalid confirmation code", models.ErrValidation)
	}

	token, err := generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.TokenResponse{Token: token}, nil
}

func generateToken(user *models.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      now.Add(config.JWTExpiration).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(config.JWTSecret)
	if err != nil {
		return "", err
	}

	return signedToken, nil
}
