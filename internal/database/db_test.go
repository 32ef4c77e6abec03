package database

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pressdeck/pressdeck/internal/models"
)

func TestOpen_DefaultsToSQLiteMemory(t *testing.T) {
	db, err := Open(Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrateAndSeed(db))

	var org models.Organization
	require.NoError(t, db.First(&org, "slug = ?", "default").Error)
	require.Equal(t, "Default Organization", org.Name)
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "mongodb"})
	require.Error(t, err)
}

func TestBuildPostgresDSN(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{User: "press", Name: "pressdeck", Password: "s3cret"})
	require.NoError(t, err)
	require.Contains(t, dsn, "host=localhost")
	require.Contains(t, dsn, "port=5432")
	require.Contains(t, dsn, "dbname=pressdeck")
	require.Contains(t, dsn, "sslmode=disable")
}

func TestBuildPostgresDSN_RequiresUserAndName(t *testing.T) {
	_, err := buildPostgresDSN(Config{})
	require.Error(t, err)
}

func TestBuildMySQLDSN(t *testing.T) {
	dsn, err := buildMySQLDSN(Config{User: "press", Password: "pw", Name: "pressdeck"})
	require.NoError(t, err)
	require.Contains(t, dsn, "press:pw@tcp(127.0.0.1:3306)/pressdeck")
	require.Contains(t, dsn, "parseTime=True")
}
