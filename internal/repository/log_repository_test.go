package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/uniem/uniem-api/internal/models"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestLogRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLogRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `audit_logs`").
		WithArgs("login", "student@itu.edu.tr logged in", uint64(42), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Create(&models.AuditLog{
		Action:  "login",
		Message: "student@itu.edu.tr logged in",
		UserID:  42,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogRepository_DeleteOlderThan(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLogRepository(db)

	cutoff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `audit_logs` WHERE created_at <= \\?").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 17))
	mock.ExpectCommit()

	deleted, err := repo.DeleteOlderThan(cutoff)
	require.NoError(t, err)
	require.Equal(t, int64(17), deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogRepository_DeleteOlderThan_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLogRepository(db)

	cutoff := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `audit_logs`").
		WillReturnError(gorm.ErrInvalidDB)
	mock.ExpectRollback()

	_, err := repo.DeleteOlderThan(cutoff)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
