// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/metro-bond/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register stores a first-time sign-in. created is false when an account
// with the same email already exists, in which case nothing is written.
func (s *Service) Register(
	ctx context.Context,
	req CreateUserRequest,
) (user *User, created bool, err error) {
	email := normalizeEmail(req.Email)

	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, false, err
	}

	user = &User{
		ID:       uuid.New().String(),
		Email:    email,
		Name:     strings.TrimSpace(req.Name),
		PhotoURL: req.PhotoURL,
		Role:     RoleUser,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// a concurrent sign-in won the insert
		if errors.Is(err, core.ErrDuplicateKey) {
			existing, getErr := s.repo.GetByEmail(ctx, email)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return user, true, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, normalizeEmail(email))
}

// GetRoleByEmail backs the admin gate.
func (s *Service) GetRoleByEmail(
	ctx context.Context,
	email string,
) (string, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// IsAdmin reports false for unknown accounts rather than failing.
func (s *Service) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) MakeAdmin(ctx context.Context, id string) error {
	if err := s.repo.SetRole(ctx, id, RoleAdmin); err != nil {
		return fmt.Errorf("make admin: %w", err)
	}
	return nil
}

func (s *Service) SetPremium(ctx context.Context, id string, premium bool) error {
	return s.repo.SetPremium(ctx, id, premium)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
