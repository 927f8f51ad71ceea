package models

import (
	"time"

	"gorm.io/gorm"

	"foodlink-admin/internal/core/domain"
)

// Session represents the sessions table — the durable copy of a signed-in
// session. The bearer token itself must stay replayable against the backend,
// so it is stored as issued; it is never written to logs (use SessionID).
type Session struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	SessionID   string     `gorm:"uniqueIndex;size:36;not null" json:"session_id"`
	Token       string     `gorm:"uniqueIndex;size:512;not null" json:"-"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	Login       string     `gorm:"size:100" json:"login"`
	UserName    string     `gorm:"size:100" json:"user_name"`
	Email       string     `gorm:"size:100" json:"email"`
	CompanyName string     `gorm:"size:200" json:"company_name"`
	SystemID    string     `gorm:"size:100" json:"system_id"`
	Role        string     `gorm:"size:20;not null" json:"role"`
	ExpiresAt   time.Time  `gorm:"not null;index" json:"expires_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt   *time.Time `gorm:"index" json:"revoked_at"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// ToDomain converts the durable row back into the in-memory session shape.
func (s *Session) ToDomain() *domain.Session {
	return &domain.Session{
		ID:    s.SessionID,
		Token: s.Token,
		Principal: &domain.Principal{
			ID:          s.UserID,
			Login:       s.Login,
			UserName:    s.UserName,
			Email:       s.Email,
			CompanyName: s.CompanyName,
			SystemID:    s.SystemID,
			Role:        domain.Role(s.Role),
		},
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
	}
}

// FromDomain builds a durable row from an in-memory session.
func FromDomain(sess *domain.Session) *Session {
	return &Session{
		SessionID:   sess.ID,
		Token:       sess.Token,
		UserID:      sess.Principal.ID,
		Login:       sess.Principal.Login,
		UserName:    sess.Principal.UserName,
		Email:       sess.Principal.Email,
		CompanyName: sess.Principal.CompanyName,
		SystemID:    sess.Principal.SystemID,
		Role:        string(sess.Principal.Role),
		ExpiresAt:   sess.ExpiresAt,
	}
}

// AutoMigrate creates the portal's own tables if they do not exist
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Session{},
	)
}
