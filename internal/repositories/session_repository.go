package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionRepository persists refresh sessions. Expired rows are never
// reaped here; callers check expiry on use.
type SessionRepository interface {
	Create(ctx context.Context, userID, token string, expiresAt time.Time) (*models.RefreshToken, error)
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	// Delete is idempotent: deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

// GORMSessionRepository is a GORM implementation of SessionRepository.
type GORMSessionRepository struct {
	db *gorm.DB
}

// NewGORMSessionRepository creates a new instance of GORMSessionRepository.
func NewGORMSessionRepository(db *gorm.DB) *GORMSessionRepository {
	return &GORMSessionRepository{db: db}
}

// Create stores a new refresh session.
func (r *GORMSessionRepository) Create(ctx context.Context, userID, token string, expiresAt time.Time) (*models.RefreshToken, error) {
	session := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("failed to store refresh session: %w", ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to store refresh session: %w", err)
	}
	return session, nil
}

// Find looks a session up by its token.
func (r *GORMSessionRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	var session models.RefreshToken
	if err := r.db.WithContext(ctx).First(&session, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("refresh session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find refresh session: %w", err)
	}
	return &session, nil
}

// Delete removes the session holding token, if any.
func (r *GORMSessionRepository) Delete(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.RefreshToken{}).Error; err != nil {
		return fmt.Errorf("failed to delete refresh session: %w", err)
	}
	return nil
}

// DeleteAllForUser removes every session of the user.
func (r *GORMSessionRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
		return fmt.Errorf("failed to delete refresh sessions of user %s: %w", userID, err)
	}
	return nil
}
