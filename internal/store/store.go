package store

import (
	"errors"

	"github.com/lthummus/loginthingie/internal/user"
)

var (
	ErrDuplicateUser = errors.New("store: user already exists")
	ErrCorruptStore  = errors.New("store: store file is not valid JSON")
)

type Store interface {
	Load() (map[string]user.Record, error)
	Create(username string, record user.Record) error
	Exists(username string) (bool, error)
	Count() (int, error)
}
