package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"roomie-app-go/internal/auth"
)

// TokenIssuer mints a bearer token for an authenticated user.
type TokenIssuer interface {
	Generate(userID uint, username string) (string, error)
}

type Service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates an account and returns it with a fresh token.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, string, error) {
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" {
		return nil, "", fmt.Errorf("username is required")
	}
	if err := auth.ValidatePassword(input.Password); err != nil {
		return nil, "", err
	}

	existing, err := s.repo.GetByUsername(ctx, input.Username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrUsernameTaken
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	created := User{
		Username:       input.Username,
		HashedPassword: hashed,
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		MiddleName:     input.MiddleName,
		BirthDate:      strings.TrimSpace(input.BirthDate),
		Contact:        strings.TrimSpace(input.Contact),
	}
	if err := s.repo.CreateUser(ctx, &created); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(created.ID, created.Username)
	if err != nil {
		return nil, "", err
	}
	return &created, token, nil
}

// Login verifies the credentials and returns the user with a fresh token.
func (s *Service) Login(ctx context.Context, username, password string) (*User, string, error) {
	username = strings.TrimSpace(username)

	found, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", auth.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := auth.VerifyPassword(found.HashedPassword, password); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(found.ID, found.Username)
	if err != nil {
		return nil, "", err
	}
	return found, token, nil
}

func (s *Service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
