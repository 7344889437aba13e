package services

import (
	"errors"
	"fmt"

	"review-catalogue-api/models"
	"review-catalogue-api/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(req models.CreateUserRequest) (*models.User, error)
	GetUsers(params models.ListParams) ([]models.User, int64, error)
	GetUser(username string) (*models.User, error)
	UpdateUser(username string, req models.UpdateUserRequest) (*models.User, error)
	DeleteUser(username string) error
	GetProfile(userID uint) (*models.User, error)
	UpdateProfile(userID uint, req models.UpdateUserRequest) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// CreateUser is the admin path: the role may be set explicitly.
func (s *userService) CreateUser(req models.CreateUserRequest) (*models.User, error) {
	if req.Username == models.ReservedUsername {
		return nil, fmt.Errorf("%w: username %q is reserved", models.ErrValidation, models.ReservedUsername)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", models.ErrValidation, role)
	}

	user := &models.User{
		Username:           req.Username,
		Email:              req.Email,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Bio:                req.Bio,
		Role:               role,
		ConfirmationSecret: uuid.NewString(),
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email or username already registered", models.ErrConflict)
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) GetUsers(params models.ListParams) ([]models.User, int64, error) {
	return s.userRepo.GetList(params)
}

func (s *userService) GetUser(username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", models.ErrNotFound, username)
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser is the admin path: the role may be changed here and only here.
func (s *userService) UpdateUser(username string, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetUser(username)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", models.ErrValidation, *req.Role)
		}
		user.Role = *req.Role
	}

	applyUserFields(user, req)

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already registered", models.ErrConflict)
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) DeleteUser(username string) error {
	user, err := s.GetUser(username)
	if err != nil {
		return err
	}
	return s.userRepo.Delete(user.ID)
}

func (s *userService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", models.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile is the self-service path. The role field of the payload is
// ignored outright: the caller keeps their pre-existing role no matter what
// the request carries.
func (s *userService) UpdateProfile(userID uint, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	applyUserFields(user, req)

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already registered", models.ErrConflict)
		}
		return nil, err
	}

	return user, nil
}

func applyUserFields(user *models.User, req models.UpdateUserRequest) {
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
}
