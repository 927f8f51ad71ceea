package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodlink-admin/internal/adapters/backend"
	"foodlink-admin/internal/adapters/persistence/models"
	"foodlink-admin/internal/adapters/persistence/repositories"
	"foodlink-admin/internal/config"
	"foodlink-admin/internal/core/domain"
	"foodlink-admin/internal/pkg/token"
)

// SessionService is the single source of truth for who is signed in and with
// what credential. It owns both persisted copies of session state: the
// in-memory map plus the durable sessions table, written together through the
// login, logout and invalidate paths only. Resource handlers read sessions
// through Resolve and never mutate them.
type SessionService struct {
	api  *backend.Client
	repo repositories.SessionRepository
	cfg  *config.Config

	mu            sync.Mutex
	sessions      map[string]*domain.Session // keyed by bearer token
	loginInFlight map[string]bool            // keyed by submitted identity
	lastError     string
}

// NewSessionService creates the session service and registers it as the
// backend client's 401 hook, so a rejected credential clears both session
// copies synchronously.
func NewSessionService(api *backend.Client, repo repositories.SessionRepository, cfg *config.Config) *SessionService {
	s := &SessionService{
		api:           api,
		repo:          repo,
		cfg:           cfg,
		sessions:      make(map[string]*domain.Session),
		loginInFlight: make(map[string]bool),
	}

	api.SetUnauthorizedHook(func(tok string) {
		s.Invalidate(context.Background(), tok)
	})

	return s
}

// LoginSuperAdmin authenticates against the super-admin endpoint and
// establishes a session with role superadmin.
func (s *SessionService) LoginSuperAdmin(ctx context.Context, login, password string) (*domain.Session, error) {
	if login == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	key := "superadmin/" + login
	if err := s.beginLogin(key); err != nil {
		return nil, err
	}
	defer s.endLogin(key)

	result, err := s.api.SuperAdminLogin(ctx, login, password)
	if err != nil {
		s.storeError(backend.Message(err, "Failed to login"))
		return nil, err
	}

	return s.establish(ctx, result, domain.RoleSuperAdmin)
}

// LoginAdmin authenticates against the business-admin endpoint and
// establishes a session with role admin. The flow is credential-free by
// design: identity is the user name + system id + email combination.
func (s *SessionService) LoginAdmin(ctx context.Context, userName, systemID, email string) (*domain.Session, error) {
	if userName == "" || systemID == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}

	key := "admin/" + systemID + "/" + userName
	if err := s.beginLogin(key); err != nil {
		return nil, err
	}
	defer s.endLogin(key)

	result, err := s.api.AdminLogin(ctx, userName, systemID, email)
	if err != nil {
		s.storeError(backend.Message(err, "Failed to login"))
		return nil, err
	}

	return s.establish(ctx, result, domain.RoleAdmin)
}

// establish stitches the role onto the returned principal and writes both
// session copies. The role is asserted portal-side from which login endpoint
// succeeded — a UI-gating hint, never an authorization fact.
func (s *SessionService) establish(ctx context.Context, result *backend.LoginResult, role domain.Role) (*domain.Session, error) {
	if result.Token == "" || result.User == nil {
		return nil, domain.ErrInvalidCredentials
	}

	principal := *result.User
	principal.Role = role

	sess := &domain.Session{
		ID:        uuid.NewString(),
		Token:     result.Token,
		Principal: &principal,
		ExpiresAt: s.sessionExpiry(result.Token),
		CreatedAt: time.Now(),
	}

	// Durable copy first: a session that cannot be persisted is not created.
	if err := s.repo.Create(ctx, models.FromDomain(sess)); err != nil {
		s.storeError("Failed to persist session")
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.lastError = ""
	s.mu.Unlock()

	log.Printf("✅ Session established: %s [role: %s]", sess.ID, role)
	return sess, nil
}

// Logout clears both session copies. Synchronous, no backend call, and
// idempotent: logging out an already-cleared token is a no-op.
func (s *SessionService) Logout(ctx context.Context, tok string) error {
	return s.clear(ctx, tok, "logout")
}

// Invalidate is the 401 path: the backend rejected the credential, so both
// copies are cleared in the same single write path logout uses.
func (s *SessionService) Invalidate(ctx context.Context, tok string) {
	if err := s.clear(ctx, tok, "rejected by backend"); err != nil {
		log.Printf("⚠️ Failed to invalidate session: %v", err)
	}
}

func (s *SessionService) clear(ctx context.Context, tok, reason string) error {
	if tok == "" {
		return nil
	}

	s.mu.Lock()
	sess, found := s.sessions[tok]
	delete(s.sessions, tok)
	s.mu.Unlock()

	if err := s.repo.DeleteByToken(ctx, tok); err != nil {
		return err
	}

	if found {
		log.Printf("🔒 Session cleared: %s (%s)", sess.ID, reason)
	}
	return nil
}

// Resolve returns the session for a bearer token. On a memory miss it
// rehydrates from the durable copy, which is how sessions survive a process
// restart. Expired sessions are cleared on sight.
func (s *SessionService) Resolve(ctx context.Context, tok string) (*domain.Session, error) {
	if tok == "" {
		return nil, domain.ErrSessionNotFound
	}

	s.mu.Lock()
	sess, ok := s.sessions[tok]
	s.mu.Unlock()

	if ok {
		if sess.IsExpired() {
			_ = s.clear(ctx, tok, "expired")
			return nil, domain.ErrSessionExpired
		}
		return sess, nil
	}

	row, err := s.repo.GetByToken(ctx, tok)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	if row.IsExpired() || row.IsRevoked() {
		_ = s.clear(ctx, tok, "expired")
		return nil, domain.ErrSessionExpired
	}

	sess = row.ToDomain()
	s.mu.Lock()
	s.sessions[tok] = sess
	s.mu.Unlock()

	return sess, nil
}

// LastError returns the stored human-readable login error, if any
func (s *SessionService) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// ClearError resets the last-error field without touching session state
func (s *SessionService) ClearError() {
	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
}

// ActiveSessions counts live durable sessions
func (s *SessionService) ActiveSessions(ctx context.Context) (int64, error) {
	return s.repo.CountActive(ctx)
}

// beginLogin enforces mutual exclusion on the login path: a second login for
// the same identity while one is in flight is rejected instead of racing
// last-write-wins. The guard is keyed by submitted identity so one client's
// slow round trip never blocks another's.
func (s *SessionService) beginLogin(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loginInFlight[key] {
		return domain.ErrLoginInFlight
	}
	s.loginInFlight[key] = true
	s.lastError = ""
	return nil
}

func (s *SessionService) endLogin(key string) {
	s.mu.Lock()
	delete(s.loginInFlight, key)
	s.mu.Unlock()
}

func (s *SessionService) storeError(message string) {
	s.mu.Lock()
	s.lastError = message
	s.mu.Unlock()
}

// sessionExpiry sizes the session lifetime: the configured TTL, shortened to
// the token's own exp claim when the backend issues one that is sooner.
func (s *SessionService) sessionExpiry(tok string) time.Time {
	expiry := time.Now().Add(s.cfg.SessionTTL())
	if exp, err := token.Expiry(tok); err == nil && exp.Before(expiry) {
		expiry = exp
	}
	return expiry
}
