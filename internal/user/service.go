// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/angelamos/contentai/internal/auth"
	"github.com/angelamos/contentai/internal/core"
)

// Service owns profile and admin operations and doubles as the
// account backend for the auth feature.
type Service struct {
	repo Repository
}

var _ auth.UserProvider = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// validUserID rejects malformed path ids before they reach the
// database. A garbage id is indistinguishable from a missing user to
// the caller.
func validUserID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("parse user id: %w", core.ErrNotFound)
	}
	return nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	userID string,
	req UpdateProfileRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	user.Username = req.Username
	user.Email = req.Email

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Service) SetAdmin(
	ctx context.Context,
	userID string,
	isAdmin bool,
) (*User, error) {
	if err := validUserID(userID); err != nil {
		return nil, err
	}

	if err := s.repo.SetAdmin(ctx, userID, isAdmin); err != nil {
		return nil, fmt.Errorf("set admin: %w", err)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("set admin: %w", err)
	}

	return user, nil
}

// auth.UserProvider implementation.

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return toUserInfo(user)
}

func (s *Service) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, err
	}
	return toUserInfo(user)
}

func (s *Service) Create(
	ctx context.Context,
	username, email, passwordHash string,
) (*auth.UserInfo, error) {
	now := time.Now()
	user := &User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	id uuid.UUID,
	passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, id.String(), passwordHash)
}

func toUserInfo(u *User) (*auth.UserInfo, error) {
	id, err := uuid.Parse(u.ID)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}

	return &auth.UserInfo{
		ID:           id,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
	}, nil
}
