package database

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationURL(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@localhost:5432/lendora", "pgx5://u:p@localhost:5432/lendora"},
		{"postgresql://u:p@db/lendora?sslmode=disable", "pgx5://u:p@db/lendora?sslmode=disable"},
		{"pgx5://already", "pgx5://already"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, MigrationURL(tc.in))
	}
}

func TestMigrationsAreEmbeddedInPairs(t *testing.T) {
	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)

	downs, err := fs.Glob(migrationsFS, "migrations/*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}

func TestUsersMigrationEnforcesSubjectUniqueness(t *testing.T) {
	body, err := fs.ReadFile(migrationsFS, "migrations/000001_create_users.up.sql")
	require.NoError(t, err)

	assert.Contains(t, string(body), "UNIQUE (subject_id)")
}
