package jsonfile

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lthummus/loginthingie/internal/digest"
	"github.com/lthummus/loginthingie/internal/notices"
	"github.com/lthummus/loginthingie/internal/store"
	"github.com/lthummus/loginthingie/internal/user"
)

func prepareViper(t *testing.T, config string) {
	viper.SetConfigType("yaml")
	err := viper.ReadConfig(strings.NewReader(config))
	require.NoError(t, err)
	t.Cleanup(func() {
		viper.Reset()
	})
}

func newTestStore(t *testing.T) *Store {
	return New(filepath.Join(t.TempDir(), "users.json"))
}

func TestNewFromConfig(t *testing.T) {
	t.Run("uses configured path", func(t *testing.T) {
		prepareViper(t, `
store:
  file: /somewhere/else/users.json
`)

		s := NewFromConfig()
		assert.Equal(t, "/somewhere/else/users.json", s.Filename())
	})

	t.Run("falls back to default", func(t *testing.T) {
		t.Cleanup(func() {
			viper.Reset()
		})

		s := NewFromConfig()
		assert.Equal(t, "users.json", s.Filename())
	})
}

func TestStore_Load(t *testing.T) {
	t.Run("missing file is an empty store", func(t *testing.T) {
		s := newTestStore(t)

		users, err := s.Load()
		assert.NoError(t, err)
		assert.Empty(t, users)
		assert.NotNil(t, users)
	})

	t.Run("reads what is on disk", func(t *testing.T) {
		s := newTestStore(t)
		raw := `{
    "alice": {
        "password": "8d969eef6ecad3c29a3a629280e686cf0c3f5d5a86aff3ca12020c923adc6c92",
        "created_at": "2024-05-01T10:00:00Z"
    },
    "bob": {
        "password": "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
        "created_at": "2024-06-02T11:30:00Z"
    }
}`
		require.NoError(t, os.WriteFile(s.Filename(), []byte(raw), 0600))

		users, err := s.Load()
		assert.NoError(t, err)
		assert.Len(t, users, 2)
		assert.NoError(t, users["alice"].CheckPassword("123456"))
		assert.NoError(t, users["bob"].CheckPassword("password"))
		assert.Equal(t, "2024-05-01T10:00:00Z", users["alice"].CreatedAt)
	})

	t.Run("tolerates zone-less timestamps", func(t *testing.T) {
		s := newTestStore(t)
		raw := `{
    "carol": {
        "password": "8d969eef6ecad3c29a3a629280e686cf0c3f5d5a86aff3ca12020c923adc6c92",
        "created_at": "2024-05-01T10:00:00"
    }
}`
		require.NoError(t, os.WriteFile(s.Filename(), []byte(raw), 0600))

		users, err := s.Load()
		assert.NoError(t, err)
		assert.Equal(t, "2024-05-01T10:00:00", users["carol"].CreatedAt)
	})

	t.Run("garbage is treated as empty", func(t *testing.T) {
		t.Cleanup(func() {
			notices.Reset()
		})

		s := newTestStore(t)
		require.NoError(t, os.WriteFile(s.Filename(), []byte("this is not json{{{"), 0600))

		users, err := s.Load()
		assert.ErrorIs(t, err, store.ErrCorruptStore)
		assert.Empty(t, users)
		assert.NotNil(t, users)

		// the damage should be surfaced somewhere a human will see it
		assert.Len(t, notices.GetMessages(), 1)
	})

	t.Run("null document is an empty store", func(t *testing.T) {
		s := newTestStore(t)
		require.NoError(t, os.WriteFile(s.Filename(), []byte("null"), 0600))

		users, err := s.Load()
		assert.NoError(t, err)
		assert.Empty(t, users)
		assert.NotNil(t, users)
	})
}

func TestStore_Create(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		s := newTestStore(t)

		err := s.Create("alice", user.NewRecord("hunter2"))
		assert.NoError(t, err)

		exists, err := s.Exists("alice")
		assert.NoError(t, err)
		assert.True(t, exists)

		count, err := s.Count()
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("duplicate username", func(t *testing.T) {
		s := newTestStore(t)

		require.NoError(t, s.Create("alice", user.NewRecord("hunter2")))

		err := s.Create("alice", user.NewRecord("different password"))
		assert.ErrorIs(t, err, store.ErrDuplicateUser)

		count, err := s.Count()
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("usernames are case sensitive", func(t *testing.T) {
		s := newTestStore(t)

		require.NoError(t, s.Create("alice", user.NewRecord("hunter2")))
		assert.NoError(t, s.Create("Alice", user.NewRecord("hunter2")))

		count, err := s.Count()
		assert.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("writes are visible to other stores on the same file", func(t *testing.T) {
		s := newTestStore(t)
		require.NoError(t, s.Create("alice", user.NewRecord("hunter2")))

		other := New(s.Filename())
		users, err := other.Load()
		assert.NoError(t, err)
		assert.Len(t, users, 1)
		assert.NoError(t, users["alice"].CheckPassword("hunter2"))
	})

	t.Run("replaces a corrupt store", func(t *testing.T) {
		t.Cleanup(func() {
			notices.Reset()
		})

		s := newTestStore(t)
		require.NoError(t, os.WriteFile(s.Filename(), []byte("not json"), 0600))

		err := s.Create("alice", user.NewRecord("hunter2"))
		assert.NoError(t, err)

		users, err := s.Load()
		assert.NoError(t, err)
		assert.Len(t, users, 1)

		// the rewrite fixed the file, so the warning should be gone
		assert.Empty(t, notices.GetMessages())
	})

	t.Run("save failure is reported", func(t *testing.T) {
		s := New(filepath.Join(t.TempDir(), "missing", "users.json"))

		err := s.Create("alice", user.NewRecord("hunter2"))
		assert.Error(t, err)

		exists, err := s.Exists("alice")
		assert.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestStore_SaveFormat(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Create("alice", user.Record{
		Password:  digest.FromPassword("123456"),
		CreatedAt: "2024-05-01T10:00:00Z",
	}))

	data, err := os.ReadFile(s.Filename())
	require.NoError(t, err)

	expected := `{
    "alice": {
        "password": "8d969eef6ecad3c29a3a629280e686cf0c3f5d5a86aff3ca12020c923adc6c92",
        "created_at": "2024-05-01T10:00:00Z"
    }
}`
	assert.Equal(t, expected, string(data))

	info, err := os.Stat(s.Filename())
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0600), info.Mode().Perm())
}

func TestStore_SaveOrdersUsernames(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Create("bob", user.NewRecord("hunter2")))
	require.NoError(t, s.Create("alice", user.NewRecord("hunter2")))

	data, err := os.ReadFile(s.Filename())
	require.NoError(t, err)

	written := string(data)
	assert.Less(t, strings.Index(written, `"alice"`), strings.Index(written, `"bob"`))
}
