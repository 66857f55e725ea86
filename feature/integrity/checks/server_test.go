package checks

import (
	"testing"

	"pricing-modeller/core/database"
	"pricing-modeller/feature/submission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSQLite(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		Name:   "file:" + name + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	return db
}

func TestCheckServerIntegrity_NilDB(t *testing.T) {
	report, err := CheckServerIntegrity(nil)
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckServerIntegrity_Migrated(t *testing.T) {
	db := setupSQLite(t, "checks_migrated")
	require.NoError(t, submission.Migrate(db))

	report, err := CheckServerIntegrity(db)
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Equal(t, "sqlite", report.Driver)
	assert.Empty(t, report.MissingColumns)
}

func TestCheckServerIntegrity_MissingColumn(t *testing.T) {
	db := setupSQLite(t, "checks_missing")
	require.NoError(t, db.Exec("CREATE TABLE chat_results (id TEXT PRIMARY KEY, data TEXT)").Error)

	report, err := CheckServerIntegrity(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, []string{"created_at"}, report.MissingColumns)
}

func TestCheckServerIntegrity_NoTable(t *testing.T) {
	db := setupSQLite(t, "checks_no_table")

	report, err := CheckServerIntegrity(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, submission.Columns, report.MissingColumns)
}
