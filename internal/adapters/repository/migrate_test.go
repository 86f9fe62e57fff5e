package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations(t *testing.T) {
	t.Run("Success: Embedded migrations are ordered", func(t *testing.T) {
		files, err := loadMigrations("")

		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, "001_init.sql", files[0].name)
		assert.Equal(t, "002_score_snapshots.sql", files[1].name)
		assert.Contains(t, files[0].sql, "goal_records")
	})

	t.Run("Success: Directory overrides embedded files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "010_b.sql"), []byte("SELECT 2;"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "005_a.sql"), []byte("SELECT 1;"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "007_empty.sql"), []byte("  \n"), 0o644))

		files, err := loadMigrations(dir)

		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, "005_a.sql", files[0].name)
		assert.Equal(t, "010_b.sql", files[1].name)
	})

	t.Run("Edge Case: Missing directory falls back to embedded", func(t *testing.T) {
		files, err := loadMigrations(filepath.Join(t.TempDir(), "does-not-exist"))

		require.NoError(t, err)
		assert.Len(t, files, 2)
	})
}
