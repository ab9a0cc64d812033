package service

import (
	"context"
	"errors"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"

	"gorm.io/gorm"
)

// UserService is the admin-facing user directory plus the /users/me
// self-service operations.
type UserService interface {
	List(ctx context.Context, search string, limit, offset int) ([]models.User, int64, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateByUsername(ctx context.Context, username string, req dto.UpdateUserRequest) (*models.User, error)
	DeleteByUsername(ctx context.Context, username string) error
	UpdateSelf(ctx context.Context, user *models.User, req dto.UpdateUserRequest) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, search string, limit, offset int) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, search, limit, offset)
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	if vErr := validateUsername(req.Username); vErr != nil {
		return nil, vErr
	}

	role := models.RoleUser
	if req.Role != "" {
		role = models.Role(req.Role)
		if !role.Valid() {
			return nil, NewValidationError("role", "unknown role")
		}
	}

	if vErr, err := checkIdentityTaken(ctx, s.userRepo, req.Email, req.Username, ""); err != nil {
		return nil, err
	} else if vErr != nil {
		return nil, vErr
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if isUniqueViolation(err, "") {
			return nil, NewValidationError(NonFieldErrors, "user already exists")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateByUsername(ctx context.Context, username string, req dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		role := models.Role(*req.Role)
		if !role.Valid() {
			return nil, NewValidationError("role", "unknown role")
		}
		user.Role = role
	}

	return s.patch(ctx, user, req)
}

func (s *userService) DeleteByUsername(ctx context.Context, username string) error {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, user)
}

// UpdateSelf applies a profile patch for the authenticated user. The role
// field is read-only here and silently ignored when present.
func (s *userService) UpdateSelf(ctx context.Context, user *models.User, req dto.UpdateUserRequest) (*models.User, error) {
	return s.patch(ctx, user, req)
}

func (s *userService) patch(ctx context.Context, user *models.User, req dto.UpdateUserRequest) (*models.User, error) {
	email := user.Email
	if req.Email != nil {
		email = *req.Email
	}
	username := user.Username
	if req.Username != nil {
		username = *req.Username
	}
	if vErr, err := checkIdentityTaken(ctx, s.userRepo, email, username, user.ID); err != nil {
		return nil, err
	} else if vErr != nil {
		return nil, vErr
	}

	if vErr := applyIdentityPatch(user, req.Username, req.Email, req.FirstName, req.LastName, req.Bio); vErr != nil {
		return nil, vErr
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if isUniqueViolation(err, "") {
			return nil, NewValidationError(NonFieldErrors, "username or email already in use")
		}
		return nil, err
	}
	return user, nil
}
