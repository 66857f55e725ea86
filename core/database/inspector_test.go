package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: "file:" + t.Name() + "?mode=memory&cache=shared"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE chat_results (id TEXT PRIMARY KEY, created_at INTEGER, data TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "chat_results")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Name] = col.Type
	}
	assert.Equal(t, "text", colMap["id"])
	assert.Equal(t, "integer", colMap["created_at"])
	assert.Equal(t, "text", colMap["data"])

	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: "file:" + t.Name() + "?mode=memory&cache=shared"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE chat_results (id TEXT PRIMARY KEY, data TEXT)").Error)

	missing, err := MissingColumns(db, "chat_results", []string{"id", "created_at", "data"})
	require.NoError(t, err)
	assert.Equal(t, []string{"created_at"}, missing)

	missing, err = MissingColumns(db, "absent", []string{"id"})
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, missing)
}
