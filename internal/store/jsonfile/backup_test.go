package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lthummus/loginthingie/internal/user"
)

func enableBackups(t *testing.T, backupDir string) {
	prepareViper(t, fmt.Sprintf(`
store:
  auto_backup: true
  backup_dir: %s
`, backupDir))
}

func TestStore_Backup(t *testing.T) {
	t.Run("first save has nothing to back up", func(t *testing.T) {
		backupDir := filepath.Join(t.TempDir(), "backups")
		enableBackups(t, backupDir)

		s := newTestStore(t)
		require.NoError(t, s.Create("alice", user.NewRecord("hunter2")))

		_, err := os.Stat(backupDir)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("later saves preserve the previous contents", func(t *testing.T) {
		backupDir := filepath.Join(t.TempDir(), "backups")
		enableBackups(t, backupDir)

		s := newTestStore(t)
		require.NoError(t, s.Create("alice", user.NewRecord("hunter2")))
		require.NoError(t, s.Create("bob", user.NewRecord("swordfish")))

		entries, err := os.ReadDir(backupDir)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		name := entries[0].Name()
		assert.True(t, strings.HasPrefix(name, "users-"))
		assert.True(t, strings.HasSuffix(name, ".json"))

		data, err := os.ReadFile(filepath.Join(backupDir, name))
		require.NoError(t, err)

		var snapshot map[string]user.Record
		require.NoError(t, json.Unmarshal(data, &snapshot))

		// the backup is the state before bob was added
		assert.Len(t, snapshot, 1)
		assert.NoError(t, snapshot["alice"].CheckPassword("hunter2"))
	})

	t.Run("every save gets its own backup file", func(t *testing.T) {
		backupDir := filepath.Join(t.TempDir(), "backups")
		enableBackups(t, backupDir)

		s := newTestStore(t)
		require.NoError(t, s.Create("alice", user.NewRecord("hunter2")))
		require.NoError(t, s.Create("bob", user.NewRecord("swordfish")))
		require.NoError(t, s.Create("carol", user.NewRecord("letmein")))

		entries, err := os.ReadDir(backupDir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("backup failure does not block the save", func(t *testing.T) {
		dir := t.TempDir()
		notADir := filepath.Join(dir, "backups")
		require.NoError(t, os.WriteFile(notADir, []byte("in the way"), 0600))
		enableBackups(t, notADir)

		s := newTestStore(t)
		require.NoError(t, s.Create("alice", user.NewRecord("hunter2")))
		require.NoError(t, s.Create("bob", user.NewRecord("swordfish")))

		count, err := s.Count()
		assert.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("disabled by default", func(t *testing.T) {
		backupDir := filepath.Join(t.TempDir(), "backups")
		prepareViper(t, fmt.Sprintf(`
store:
  backup_dir: %s
`, backupDir))

		s := newTestStore(t)
		require.NoError(t, s.Create("alice", user.NewRecord("hunter2")))
		require.NoError(t, s.Create("bob", user.NewRecord("swordfish")))

		_, err := os.Stat(backupDir)
		assert.True(t, os.IsNotExist(err))
	})
}
