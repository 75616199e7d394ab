package repository

import (
	"database/sql"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens a gorm handle over a sqlmock connection.
func setupTestDB(t *testing.T, matchers ...sqlmock.QueryMatcher) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	var (
		sqlDB *sql.DB
		mock  sqlmock.Sqlmock
		err   error
	)
	if len(matchers) > 0 {
		sqlDB, mock, err = sqlmock.New(sqlmock.QueryMatcherOption(matchers[0]))
	} else {
		sqlDB, mock, err = sqlmock.New()
	}
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return openGorm(t, sqlDB), mock
}

func openGorm(t *testing.T, sqlDB *sql.DB) *gorm.DB {
	t.Helper()
	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	return gormDB
}

// sqlRecorder matches every statement and keeps the text for later assertions.
type sqlRecorder struct {
	mu         sync.Mutex
	statements []string
}

func (r *sqlRecorder) Match(_, actualSQL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statements = append(r.statements, actualSQL)
	return nil
}

func (r *sqlRecorder) Statements() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.statements...)
}
