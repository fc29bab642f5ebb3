package postgres

import (
	"io/fs"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_PairedUpAndDown(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	names := make(map[string]bool, len(entries))
	for _, entry := range entries {
		names[entry.Name()] = true
	}

	for name := range names {
		if strings.HasSuffix(name, ".up.sql") {
			assert.True(t, names[strings.TrimSuffix(name, ".up.sql")+".down.sql"], "migração sem down: %s", name)
		}
	}
}

// Valores monetários precisam manter a mesma precisão do decimal usado na derivação em CSV
func TestMigrations_MoneyColumnsAreUnscaled(t *testing.T) {
	scaled := regexp.MustCompile(`(?i)NUMERIC\s*\(`)

	err := fs.WalkDir(migrationsFS, "migrations", func(path string, d fs.DirEntry, err error) error {
		require.NoError(t, err)
		if d.IsDir() {
			return nil
		}

		content, err := fs.ReadFile(migrationsFS, path)
		require.NoError(t, err)
		assert.False(t, scaled.Match(content), "coluna NUMERIC com escala fixa em %s", path)
		return nil
	})
	require.NoError(t, err)
}
