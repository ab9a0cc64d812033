package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"reviewhub/internal/config"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/mail"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the access-token payload.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	SignUp(ctx context.Context, email, username string) (*models.User, error)
	IssueToken(ctx context.Context, username, confirmationCode string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo       repository.UserRepository
	mailer         mail.Sender
	logger         *slog.Logger
	jwtSecret      string
	secretKey      []byte
	accessTokenTTL time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	mailer mail.Sender,
	logger *slog.Logger,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		mailer:         mailer,
		logger:         logger,
		jwtSecret:      cfg.JWTSecret,
		secretKey:      []byte(cfg.SecretKey),
		accessTokenTTL: cfg.AccessTokenTTL,
	}
}

// SignUp registers a user by (email, username) and dispatches a confirmation
// code. Registering again with the exact same pair is idempotent: the code
// is re-sent and the request succeeds. A partial collision with an existing
// user is a field-keyed conflict.
func (s *authService) SignUp(ctx context.Context, email, username string) (*models.User, error) {
	if vErr := validateUsername(username); vErr != nil {
		return nil, vErr
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if user.Email != email {
			return nil, NewValidationError("username", "username already in use")
		}
		// exact (email, username) match: re-issue the code
	case errors.Is(err, gorm.ErrRecordNotFound):
		if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
			return nil, NewValidationError("email", "email already in use")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		user = &models.User{
			Username: username,
			Email:    email,
			Role:     models.RoleUser,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			// a concurrent signup may have taken the pair between the
			// lookups and the insert
			if isUniqueViolation(err, "") {
				return nil, NewValidationError(NonFieldErrors, "user already exists")
			}
			return nil, err
		}
	default:
		return nil, err
	}

	code, err := confirmationCode(s.secretKey, user)
	if err != nil {
		return nil, err
	}

	// mail failure never rolls back the user record
	go func(email, username, code string) {
		if err := s.mailer.SendConfirmationCode(email, username, code); err != nil {
			s.logger.Error("confirmation mail dispatch failed",
				"username", username,
				"error", err,
			)
		}
	}(user.Email, user.Username, code)

	return user, nil
}

// IssueToken exchanges a valid confirmation code for an access token.
// Unknown usernames surface as not-found; a wrong code is a validation
// failure. Success bumps last_login, invalidating the used code.
func (s *authService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	if !checkConfirmationCode(s.secretKey, user, code) {
		return "", NewValidationError("confirmation_code", "invalid confirmation code")
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "reviewhub",
			Subject:   user.ID,
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
