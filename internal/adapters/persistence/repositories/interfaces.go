package repositories

import (
	"context"

	"foodlink-admin/internal/adapters/persistence/models"
)

// SessionRepository defines the durable session store interface
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}
