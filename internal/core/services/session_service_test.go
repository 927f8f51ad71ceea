package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"foodlink-admin/internal/adapters/backend"
	"foodlink-admin/internal/adapters/persistence/models"
	"foodlink-admin/internal/config"
	"foodlink-admin/internal/core/domain"
)

// fakeSessionRepo is an in-memory stand-in for the durable sessions table
type fakeSessionRepo struct {
	mu   sync.Mutex
	rows map[string]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{rows: make(map[string]*models.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[session.Token] = session
	return nil
}

func (r *fakeSessionRepo) GetByToken(_ context.Context, tok string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[tok]
	if !ok || row.IsRevoked() {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *row
	return &copied, nil
}

func (r *fakeSessionRepo) DeleteByToken(_ context.Context, tok string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, tok)
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for tok, row := range r.rows {
		if row.IsExpired() || row.IsRevoked() {
			delete(r.rows, tok)
			n++
		}
	}
	return n, nil
}

func (r *fakeSessionRepo) CountActive(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, row := range r.rows {
		if !row.IsExpired() && !row.IsRevoked() {
			n++
		}
	}
	return n, nil
}

func (r *fakeSessionRepo) has(tok string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[tok]
	return ok
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Backend: config.BackendConfig{BaseURL: baseURL, Timeout: 5 * time.Second},
		Session: config.SessionConfig{TTLDays: 7},
		Cookie:  config.CookieConfig{Name: "token"},
	}
}

func loginSuccess(w http.ResponseWriter, token string) {
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"token": token,
			"user": map[string]interface{}{
				"id":           3,
				"login":        "root",
				"user_name":    "pasta-co",
				"email":        "owner@pasta.co",
				"company_name": "Pasta Co",
				"system_id":    "SYS-3",
			},
		},
	})
}

func loginFailure(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}

func newTestService(t *testing.T, handler http.Handler) (*SessionService, *backend.Client, *fakeSessionRepo) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL)
	api := backend.NewClient(cfg)
	repo := newFakeSessionRepo()
	return NewSessionService(api, repo, cfg), api, repo
}

func TestLoginSuperAdmin(t *testing.T) {
	svc, _, repo := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/superadmin/login", r.URL.Path)
		loginSuccess(w, "tok-super")
	}))

	sess, err := svc.LoginSuperAdmin(context.Background(), "root", "secret")
	require.NoError(t, err)

	assert.Equal(t, "tok-super", sess.Token)
	assert.Equal(t, domain.RoleSuperAdmin, sess.Principal.Role)
	assert.Equal(t, "root", sess.Principal.Login)
	assert.NotEmpty(t, sess.ID)
	assert.True(t, repo.has("tok-super"), "durable copy must be written")
	assert.Empty(t, svc.LastError())
}

func TestLoginAdminStitchesAdminRole(t *testing.T) {
	svc, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/admin/login", r.URL.Path)
		loginSuccess(w, "tok-admin")
	}))

	sess, err := svc.LoginAdmin(context.Background(), "pasta-co", "SYS-3", "owner@pasta.co")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, sess.Principal.Role)
}

func TestLoginFailureLeavesNoSession(t *testing.T) {
	svc, _, repo := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loginFailure(w, "Invalid credentials")
	}))

	_, err := svc.LoginSuperAdmin(context.Background(), "root", "wrong")
	require.Error(t, err)

	assert.Equal(t, "Invalid credentials", svc.LastError())
	assert.False(t, repo.has("tok-super"))

	n, err := svc.ActiveSessions(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLoginValidatesInput(t *testing.T) {
	svc, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("backend must not be called for empty input")
	}))

	_, err := svc.LoginSuperAdmin(context.Background(), "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.LoginAdmin(context.Background(), "pasta-co", "", "owner@pasta.co")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoginMutualExclusion(t *testing.T) {
	entered := make(chan string, 2)
	release := make(chan struct{})

	svc, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entered <- r.URL.Path
		<-release
		if r.URL.Path == "/auth/superadmin/login" {
			loginSuccess(w, "tok-super")
		} else {
			loginSuccess(w, "tok-admin")
		}
	}))

	done := make(chan error, 2)
	go func() {
		_, err := svc.LoginSuperAdmin(context.Background(), "root", "secret")
		done <- err
	}()

	require.Equal(t, "/auth/superadmin/login", <-entered)

	// A repeat login for the same identity is rejected while the first is in
	// flight — and never reaches the backend
	_, err := svc.LoginSuperAdmin(context.Background(), "root", "secret")
	assert.ErrorIs(t, err, domain.ErrLoginInFlight)

	// A different identity's login proceeds independently
	go func() {
		_, err := svc.LoginAdmin(context.Background(), "pasta-co", "SYS-3", "owner@pasta.co")
		done <- err
	}()
	require.Equal(t, "/auth/admin/login", <-entered)

	close(release)
	require.NoError(t, <-done)
	require.NoError(t, <-done)
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _, repo := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loginSuccess(w, "tok-super")
	}))

	_, err := svc.LoginSuperAdmin(context.Background(), "root", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), "tok-super"))
	assert.False(t, repo.has("tok-super"))

	// Second logout of the same token is a no-op
	require.NoError(t, svc.Logout(context.Background(), "tok-super"))
	require.NoError(t, svc.Logout(context.Background(), ""))
}

func TestRejectedCredentialInvalidatesSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/superadmin/login", func(w http.ResponseWriter, r *http.Request) {
		loginSuccess(w, "tok-super")
	})
	mux.HandleFunc("/banners", func(w http.ResponseWriter, r *http.Request) {
		loginFailure(w, "Token expired")
	})

	svc, api, repo := newTestService(t, mux)

	sess, err := svc.LoginSuperAdmin(context.Background(), "root", "secret")
	require.NoError(t, err)

	// Any authenticated call the backend rejects clears both session copies
	ctx := backend.WithToken(context.Background(), sess.Token)
	_, err = api.ListBanners(ctx)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.False(t, repo.has(sess.Token), "durable copy must be cleared")
	_, err = svc.Resolve(context.Background(), sess.Token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestResolveRehydratesFromDurableCopy(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loginSuccess(w, "tok-super")
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := testConfig(srv.URL)
	repo := newFakeSessionRepo()

	first := NewSessionService(backend.NewClient(cfg), repo, cfg)
	sess, err := first.LoginSuperAdmin(context.Background(), "root", "secret")
	require.NoError(t, err)

	// A fresh service over the same store simulates a process restart
	second := NewSessionService(backend.NewClient(cfg), repo, cfg)
	restored, err := second.Resolve(context.Background(), sess.Token)
	require.NoError(t, err)

	assert.Equal(t, sess.ID, restored.ID)
	assert.Equal(t, domain.RoleSuperAdmin, restored.Principal.Role)
	assert.Equal(t, sess.Principal.Login, restored.Principal.Login)
}

func TestResolveExpiredSession(t *testing.T) {
	svc, _, repo := newTestService(t, http.NewServeMux())

	require.NoError(t, repo.Create(context.Background(), &models.Session{
		SessionID: "old-session",
		Token:     "tok-old",
		UserID:    3,
		Role:      string(domain.RoleAdmin),
		ExpiresAt: time.Now().Add(-time.Hour),
	}))

	_, err := svc.Resolve(context.Background(), "tok-old")
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.False(t, repo.has("tok-old"), "expired rows are cleared on sight")
}

func TestResolveUnknownToken(t *testing.T) {
	svc, _, _ := newTestService(t, http.NewServeMux())

	_, err := svc.Resolve(context.Background(), "never-issued")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = svc.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestLastErrorSurvivesOneRead(t *testing.T) {
	svc, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loginFailure(w, "Invalid credentials")
	}))

	_, err := svc.LoginSuperAdmin(context.Background(), "root", "wrong")
	require.Error(t, err)

	assert.Equal(t, "Invalid credentials", svc.LastError())
	svc.ClearError()
	assert.Empty(t, svc.LastError())
}
