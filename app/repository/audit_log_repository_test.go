package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestAuditLogListScopedToOrganization(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditLogRepository(db)

	// The trail joins through vendors so only the caller organization's
	// entries come back.
	mock.ExpectQuery("JOIN vendors ON vendors.id = audit_logs.vendor_id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "action_type"}))

	_, err := repo.List(AuditLogFilters{OrganizationID: 7})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogListWithoutScope(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditLogRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `audit_logs`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "action_type"}))

	_, err := repo.List(AuditLogFilters{})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
