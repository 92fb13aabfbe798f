package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AdventureDe/DuoChat/auth"
	"github.com/AdventureDe/DuoChat/dto"
	"github.com/AdventureDe/DuoChat/repo"
	"github.com/AdventureDe/DuoChat/repo/model"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repo     repo.UserRepo
	sessions repo.SessionStore
	tokens   *auth.TokenService
	logger   *zap.Logger
}

func NewUserService(r repo.UserRepo, s repo.SessionStore, t *auth.TokenService, logger *zap.Logger) *UserService {
	return &UserService{
		repo:     r,
		sessions: s,
		tokens:   t,
		logger:   logger,
	}
}

func (s *UserService) Register(ctx context.Context, username, email, password, password2 string) (*model.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}
	if password != password2 {
		return nil, fmt.Errorf("%w: password does not match", ErrValidation)
	}
	cnt, err := s.repo.CountByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("fail to check username: %w", err)
	}
	if cnt > 0 {
		return nil, fmt.Errorf("%w: username already taken", ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("fail to hash password: %w", err)
	}
	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username or email already taken", ErrValidation)
		}
		return nil, fmt.Errorf("fail to create user: %w", err)
	}
	s.logger.Info("user registered", zap.Int64("userID", user.ID), zap.String("username", username))
	return user, nil
}

// Login verifies credentials, issues a token and stores the session.
func (s *UserService) Login(ctx context.Context, username, password string) (int64, string, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return 0, "", fmt.Errorf("fail to get user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return 0, "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return 0, "", fmt.Errorf("fail to generate token: %w", err)
	}
	session := &dto.UserSession{
		UserID:    user.ID,
		Token:     token,
		LoginTime: time.Now(),
	}
	if err := s.sessions.SetSession(ctx, session); err != nil {
		return 0, "", fmt.Errorf("fail to store session: %w", err)
	}
	if err := s.repo.UpdateLoginTime(ctx, user.ID); err != nil {
		s.logger.Warn("fail to update login time", zap.Int64("userID", user.ID), zap.Error(err))
	}
	return user.ID, token, nil
}

func (s *UserService) Logout(ctx context.Context, userID int64, token string) error {
	stored, err := s.sessions.GetSession(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrSessionNotFound) {
			return fmt.Errorf("%w: no active session", ErrUnauthorized)
		}
		return fmt.Errorf("fail to retrieve session: %w", err)
	}
	if stored.Token != token {
		return fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	return s.sessions.DelSession(ctx, userID)
}

func (s *UserService) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, fmt.Errorf("fail to get user: %w", err)
	}
	return user, nil
}
