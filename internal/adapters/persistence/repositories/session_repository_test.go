package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"foodlink-admin/internal/adapters/persistence/models"
)

func setupMockDB(t *testing.T) (SessionRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return NewSessionRepository(gdb), mock
}

func TestCreateSession(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `sessions`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), &models.Session{
		SessionID: "ses-1",
		Token:     "tok-1",
		UserID:    3,
		Role:      "admin",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByToken(t *testing.T) {
	repo, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "session_id", "token", "user_id", "role", "expires_at"}).
		AddRow(1, "ses-1", "tok-1", 3, "admin", time.Now().Add(24*time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM `sessions` WHERE token = (.+) AND revoked_at IS NULL").
		WithArgs("tok-1").
		WillReturnRows(rows)

	session, err := repo.GetByToken(context.Background(), "tok-1")
	require.NoError(t, err)

	assert.Equal(t, "ses-1", session.SessionID)
	assert.Equal(t, uint(3), session.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByTokenNotFound(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `sessions`").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByToken(context.Background(), "nope")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteByToken(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `sessions` WHERE token = (.+)").
		WithArgs("tok-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteByToken(context.Background(), "tok-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpired(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `sessions` WHERE expires_at < (.+) OR revoked_at IS NOT NULL").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	purged, err := repo.DeleteExpired(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), purged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountActive(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `sessions` WHERE revoked_at IS NULL AND expires_at > (.+)").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountActive(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
