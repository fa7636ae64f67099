package auth

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tablecrm/pkg/utils"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	User(ctx context.Context, id int64) (*User, error)
}

type AuthServiceImpl struct {
	Users  *UserStore
	Logger *zap.Logger
}

func NewAuthService(users *UserStore, logger *zap.Logger) AuthService {
	return &AuthServiceImpl{
		Users:  users,
		Logger: logger,
	}
}

func (s *AuthServiceImpl) Signup(ctx context.Context, name, email, password string) (*User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", errors.New("email and password are required")
	}

	if _, err := s.Users.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user, err := s.Users.Create(ctx, name, email, string(hash))
	if err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.Logger.Info("user registered",
		zap.Int64("userId", user.ID),
		zap.String("email", user.Email))
	return user, token, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthServiceImpl) User(ctx context.Context, id int64) (*User, error) {
	return s.Users.FindByID(ctx, id)
}
