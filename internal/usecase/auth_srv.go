package usecase

import (
	"context"
	"errors"
	"fmt"

	"movietix/internal/data/entity"
	"movietix/internal/data/repository"
	"movietix/internal/dto/request"
	"movietix/internal/dto/response"
	"movietix/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(token string)
	CurrentUser(ctx context.Context, userID int) (*response.UserResponse, error)
}

type authService struct {
	store    repository.Store
	sessions *repository.SessionStore
	log      *zap.Logger
}

func NewAuthService(store repository.Store, sessions *repository.SessionStore, log *zap.Logger) AuthService {
	return &authService{
		store:    store,
		sessions: sessions,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, utils.FormatValidationErrors(errs))
	}

	existing, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, &entity.User{
		Username:     req.Username,
		PasswordHash: hash,
	})
	if err != nil {
		// Two registrations can race past the pre-check; storage enforces
		// uniqueness either way.
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrUsernameTaken
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User registered",
		zap.Int("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return s.authResponse(user), nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, utils.FormatValidationErrors(errs))
	}

	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to look up user", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if user == nil || !utils.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	s.log.Info("User logged in", zap.Int("user_id", user.ID))

	return s.authResponse(user), nil
}

func (s *authService) Logout(token string) {
	s.sessions.Revoke(token)
}

func (s *authService) CurrentUser(ctx context.Context, userID int) (*response.UserResponse, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get user", zap.Error(err), zap.Int("user_id", userID))
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) authResponse(user *entity.User) *response.AuthResponse {
	session := s.sessions.Create(user.ID)
	return &response.AuthResponse{
		User:      response.UserToResponse(user),
		Token:     session.Token.String(),
		ExpiresAt: session.ExpiresAt,
	}
}
