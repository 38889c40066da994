// file: internals/features/tasks/occurrences/service/mockdb_test.go
package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newTestDB opens a GORM connection over a sqlmock *sql.DB.
// SkipDefaultTransaction keeps single-statement writes out of implicit
// BEGIN/COMMIT wrappers so expectations map 1:1 onto service SQL;
// explicit transactions (lifecycle transitions) still show up as
// Begin/Commit.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gdb, mock
}
