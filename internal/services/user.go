package services

import (
	"context"
	"errors"
	"fmt"

	"conventions/internal/domain"
)

type userService struct {
	users domain.UserRepository
	opts  options
}

// NewUserService creates a UserService backed by the given repository.
func NewUserService(users domain.UserRepository, opts ...Option) domain.UserService {
	return &userService{users: users, opts: newOptions(opts)}
}

// CreateUser registers u under its identity. An existing record is never modified.
func (s *userService) CreateUser(ctx context.Context, u *domain.User) error {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()

	existing, err := s.users.GetByID(ctx, u.ID)
	if err := ignoreNotFound(err); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	if err == nil && existing != nil {
		return fmt.Errorf("%w: %s", domain.ErrIdentityAlreadyExists, u.ID)
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrIdentityAlreadyExists) {
			return fmt.Errorf("%w: %s", domain.ErrIdentityAlreadyExists, u.ID)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, u *domain.User) error {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	u.ID = userID
	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *userService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *userService) ListUsers(ctx context.Context, p domain.PaginationParams) ([]*domain.User, error) {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	users, err := s.users.List(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
