package digest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPassword(t *testing.T) {
	t.Run("known vectors", func(t *testing.T) {
		tests := []struct {
			password string
			encoded  string
		}{
			{"123456", "8d969eef6ecad3c29a3a629280e686cf0c3f5d5a86aff3ca12020c923adc6c92"},
			{"password", "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"},
			{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		}

		for _, curr := range tests {
			assert.Equal(t, curr.encoded, FromPassword(curr.password))
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, FromPassword("hunter2"), FromPassword("hunter2"))
	})

	t.Run("shape", func(t *testing.T) {
		encoded := FromPassword("hunter2")

		assert.NotEqual(t, "hunter2", encoded)
		assert.Len(t, encoded, EncodedLength)
		assert.Equal(t, strings.ToLower(encoded), encoded)
		assert.True(t, IsWellFormed(encoded))
	})
}

func TestValidate(t *testing.T) {
	encoded := FromPassword("password")

	t.Run("correct password", func(t *testing.T) {
		assert.NoError(t, Validate("password", encoded))
	})

	t.Run("wrong password", func(t *testing.T) {
		assert.Equal(t, ErrWrongPassword, Validate("p@ssw0rd", encoded))
	})

	t.Run("comparison is exact", func(t *testing.T) {
		// an uppercased digest is well formed but will never match our
		// lowercase hex output
		assert.Equal(t, ErrWrongPassword, Validate("password", strings.ToUpper(encoded)))
	})

	t.Run("malformed digests", func(t *testing.T) {
		malformed := []string{
			"",
			"nope",
			"zz884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
			encoded + "00",
			encoded[:40],
		}

		for _, curr := range malformed {
			assert.Equal(t, ErrInvalidDigest, Validate("password", curr))
		}
	})
}

func TestIsWellFormed(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		valid   bool
	}{
		{"real digest", FromPassword("hello"), true},
		{"uppercase hex", strings.ToUpper(FromPassword("hello")), true},
		{"empty", "", false},
		{"too short", "abc123", false},
		{"too long", FromPassword("hello") + "ab", false},
		{"not hex", strings.Repeat("g", EncodedLength), false},
	}

	for _, curr := range tests {
		t.Run(curr.name, func(t *testing.T) {
			assert.Equal(t, curr.valid, IsWellFormed(curr.encoded))
		})
	}
}

func FuzzValidate(f *testing.F) {
	f.Add("hello")
	f.Add("world")
	f.Add("123456")
	f.Add(" ")

	f.Fuzz(func(t *testing.T, password string) {
		encoded := FromPassword(password)
		require.True(t, IsWellFormed(encoded))
		require.NoError(t, Validate(password, encoded))
	})
}
