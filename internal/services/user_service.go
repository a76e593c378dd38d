package services

import (
	"context"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// UserService handles account management. Every method takes the
// authenticated actor and enforces self-or-admin rules itself.
type UserService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	bcryptCost  int
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, bcryptCost int) *UserService {
	return &UserService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		bcryptCost:  bcryptCost,
	}
}

func canManage(actor *models.User, userID string) bool {
	return actor.ID == userID || actor.IsAdmin
}

// ListUsers returns a page of users. Admin only.
func (s *UserService) ListUsers(ctx context.Context, actor *models.User, skip, limit int) ([]models.User, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	return s.userRepo.List(ctx, skip, limit)
}

// GetUser returns a user visible to actor.
func (s *UserService) GetUser(ctx context.Context, actor *models.User, id string) (*models.User, error) {
	if !canManage(actor, id) {
		return nil, ErrForbidden
	}
	return s.userRepo.GetByID(ctx, id)
}

// UpdateUsername changes the display name of a user.
func (s *UserService) UpdateUsername(ctx context.Context, actor *models.User, id, username string) (*models.User, error) {
	if !canManage(actor, id) {
		return nil, ErrForbidden
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Username = username
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword replaces the password after checking the current one.
func (s *UserService) UpdatePassword(ctx context.Context, actor *models.User, id, current, next string) (*models.User, error) {
	if !canManage(actor, id) {
		return nil, ErrForbidden
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !VerifyPassword(current, user.PasswordHash) {
		return nil, ErrIncorrectPassword
	}
	hash, err := HashPassword(next, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetAdmin grants or revokes the admin flag. Only another admin may do it.
func (s *UserService) SetAdmin(ctx context.Context, actor *models.User, id string, isAdmin bool) (*models.User, error) {
	if !actor.IsAdmin || actor.ID == id {
		return nil, ErrForbidden
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsAdmin = isAdmin
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user and all their sessions, cart rows and orders.
// Admin only.
func (s *UserService) DeleteUser(ctx context.Context, actor *models.User, id string) error {
	if !actor.IsAdmin {
		return ErrForbidden
	}
	// sessions first so a failed delete never leaves a usable refresh token
	if err := s.sessionRepo.DeleteAllForUser(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}
