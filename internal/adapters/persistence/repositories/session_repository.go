package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"foodlink-admin/internal/adapters/persistence/models"
)

// sessionRepository implements SessionRepository interface
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create persists a new session row
func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetByToken gets a live session by its bearer token
func (r *sessionRepository) GetByToken(ctx context.Context, tok string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Where("token = ?", tok).
		Where("revoked_at IS NULL").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteByToken removes the durable copy for a token. Used by logout and by
// the 401 invalidation path; deleting a token that is already gone is a no-op
// so both stay idempotent.
func (r *sessionRepository) DeleteByToken(ctx context.Context, tok string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", tok).
		Delete(&models.Session{}).Error
}

// DeleteExpired deletes expired and revoked rows (cleanup job)
func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at IS NOT NULL", time.Now()).
		Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

// CountActive counts live sessions
func (r *sessionRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("revoked_at IS NULL").
		Where("expires_at > ?", time.Now()).
		Count(&count).Error
	return count, err
}
