package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/vlemaire/flashdeck/internal/auth"
	"github.com/vlemaire/flashdeck/internal/errors"
	"github.com/vlemaire/flashdeck/internal/jobs"
	"github.com/vlemaire/flashdeck/internal/logger"
	"github.com/vlemaire/flashdeck/internal/models"
	"github.com/vlemaire/flashdeck/internal/repository"
)

// AuthService handles account registration and token issuance.
type AuthService interface {
	Register(ctx context.Context, username, password string) (models.User, error)
	Login(ctx context.Context, username, password string) (models.User, auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	CurrentUser(ctx context.Context, userID string) (models.User, error)
}

type authService struct {
	users repository.UserRepository
	jwt   *auth.JWTService
	flush jobs.FlushQueue
	now   func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, jwt *auth.JWTService, flush jobs.FlushQueue) AuthService {
	return &authService{users: users, jwt: jwt, flush: flush, now: time.Now}
}

func (s *authService) Register(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return models.User{}, errors.NewValidationError("username", "must be at least 3 characters long")
	}
	if len(password) < 6 {
		return models.User{}, errors.NewValidationError("password", "must be at least 6 characters long")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password: %v", err)
		return models.User{}, errors.NewInternalError(err)
	}

	user := models.User{
		ID:           models.NewUserID(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if stderrors.Is(err, repository.ErrUsernameTaken) {
			return models.User{}, errors.NewConflictError("username already exists")
		}
		log.Error("failed to insert user: %v", err)
		return models.User{}, errors.NewInternalError(err)
	}
	s.flush.EnqueueUserFlush()

	log.Info("user registered: username=%s", username)
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (models.User, auth.TokenPair, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.ByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		// Unknown user and wrong password produce the same answer so login
		// cannot be used to probe for account names.
		return models.User{}, auth.TokenPair{}, errors.NewUnauthorizedError("invalid username or password")
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		log.Warn("failed login attempt: username=%s", username)
		return models.User{}, auth.TokenPair{}, errors.NewUnauthorizedError("invalid username or password")
	}

	pair, err := s.jwt.GenerateTokenPair(user.ID)
	if err != nil {
		log.Error("failed to generate tokens: %v", err)
		return models.User{}, auth.TokenPair{}, errors.NewInternalError(err)
	}

	log.Info("user logged in: username=%s", username)
	return user, pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", errors.NewUnauthorizedError("invalid or expired refresh token")
	}
	// The account may have disappeared since the token was issued.
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return "", errors.NewUnauthorizedError("unknown user")
	}

	token, err := s.jwt.GenerateAccessToken(userID)
	if err != nil {
		return "", errors.NewInternalError(err)
	}
	return token, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID string) (models.User, error) {
	user, err := s.users.ByID(ctx, userID)
	if err != nil {
		return models.User{}, errors.NewNotFoundError("user", userID)
	}
	return user, nil
}
