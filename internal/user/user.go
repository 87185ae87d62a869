package user

import (
	"errors"
	"time"

	"github.com/lthummus/loginthingie/internal/digest"
)

var (
	ErrNoPasswordSet     = errors.New("user: no password set")
	ErrIncorrectPassword = errors.New("user: wrong password")
	ErrInvalidDigest     = errors.New("user: invalid password digest")
)

// Record is the persisted shape of an account. CreatedAt stays a string so
// files written by older tooling with zone-less timestamps still load.
type Record struct {
	Password  string `json:"password"`
	CreatedAt string `json:"created_at"`
}

func NewRecord(password string) Record {
	return Record{
		Password:  digest.FromPassword(password),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func (r Record) CheckPassword(candidate string) error {
	if len(r.Password) == 0 {
		return ErrNoPasswordSet
	}

	err := digest.Validate(candidate, r.Password)
	if errors.Is(err, digest.ErrWrongPassword) {
		return ErrIncorrectPassword
	}

	if err != nil {
		return ErrInvalidDigest
	}

	return nil
}
