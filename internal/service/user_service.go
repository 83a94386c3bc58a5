package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/repository"
)

// UserService handles user registration and lookup
type UserService struct {
	users repository.UserRepo
	auth  *AuthService
}

// NewUserService creates a new user service
func NewUserService(users repository.UserRepo, auth *AuthService) *UserService {
	return &UserService{
		users: users,
		auth:  auth,
	}
}

// CreateOrGet returns the user with the given name, creating it if needed,
// together with a token scoped to that user. An existing user is only
// returned to an admin or to that user's own token; anyone else gets
// ErrUsernameTaken.
func (s *UserService) CreateOrGet(ctx context.Context, username string, claims *model.Claims) (*model.CreateUserResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrInvalidUsername
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		user = &model.User{Username: username}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": username}).Info("Created user")
	} else if err := s.auth.Authorize(claims, user.ID); err != nil {
		return nil, ErrUsernameTaken
	}

	token, err := s.auth.IssueUserToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &model.CreateUserResponse{User: user, Token: token}, nil
}

// Get returns the user or ErrUserNotFound
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup user %d: %w", id, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
