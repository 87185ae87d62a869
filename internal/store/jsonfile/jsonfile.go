package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/lthummus/loginthingie/internal/config"
	"github.com/lthummus/loginthingie/internal/notices"
	"github.com/lthummus/loginthingie/internal/store"
	"github.com/lthummus/loginthingie/internal/user"
)

const corruptNoticeID = "store-file-corrupt"

// Store keeps every account in a single pretty-printed JSON document. The
// file is re-read on every operation so edits made next to a running process
// are picked up; nothing is cached.
type Store struct {
	lock     *sync.Mutex
	filename string
}

var _ store.Store = (*Store)(nil)

func NewFromConfig() *Store {
	config.Lock.RLock()
	defer config.Lock.RUnlock()

	file := viper.GetString(config.KeyStoreFile)
	if file == "" {
		file = config.DefaultStoreFile
	}

	absStoreFile, err := filepath.Abs(file)
	if err != nil {
		log.Warn().Str("raw_store_file", file).Err(err).Msg("could not get store file absolute path")
	}

	log.Info().Str("raw_store_file", file).Str("abs_store_file", absStoreFile).Msg("using credential store")

	return New(file)
}

func New(filename string) *Store {
	return &Store{
		lock:     &sync.Mutex{},
		filename: filename,
	}
}

func (s *Store) Filename() string {
	return s.filename
}

func (s *Store) Load() (map[string]user.Record, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.loadLocked()
}

func (s *Store) loadLocked() (map[string]user.Record, error) {
	data, err := os.ReadFile(s.filename)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("store_file", s.filename).Msg("store file does not exist; starting empty")
		return map[string]user.Record{}, nil
	}
	if err != nil {
		return map[string]user.Record{}, fmt.Errorf("jsonfile: Load: could not read store file: %w", err)
	}

	var users map[string]user.Record
	if err := json.Unmarshal(data, &users); err != nil {
		log.Warn().Str("store_file", s.filename).Err(err).Msg("store file is not valid JSON; treating as empty")
		notices.AddMessage(corruptNoticeID, fmt.Sprintf("credential store %s could not be parsed and is being treated as empty; the next save will overwrite it", s.filename))
		return map[string]user.Record{}, store.ErrCorruptStore
	}

	if users == nil {
		users = map[string]user.Record{}
	}

	return users, nil
}

func (s *Store) Save(users map[string]user.Record) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.saveLocked(users)
}

func (s *Store) saveLocked(users map[string]user.Record) error {
	if viper.GetBool(config.KeyStoreAutoBackup) {
		s.backupLocked()
	}

	data, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return fmt.Errorf("jsonfile: Save: could not marshal users: %w", err)
	}

	err = os.WriteFile(s.filename, data, 0600)
	if err != nil {
		log.Error().Str("store_file", s.filename).Err(err).Msg("could not write store file")
		return fmt.Errorf("jsonfile: Save: could not write store file: %w", err)
	}

	// whatever is on disk now parses again
	notices.DeleteMessage(corruptNoticeID)

	log.Debug().Str("store_file", s.filename).Int("user_count", len(users)).Msg("wrote store file")

	return nil
}

func (s *Store) Create(username string, record user.Record) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	users, err := s.loadLocked()
	if errors.Is(err, store.ErrCorruptStore) {
		log.Warn().Str("store_file", s.filename).Msg("existing store contents are unreadable and will be replaced")
	} else if err != nil {
		return err
	}

	if _, exists := users[username]; exists {
		return store.ErrDuplicateUser
	}

	users[username] = record

	return s.saveLocked(users)
}

func (s *Store) Exists(username string) (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	users, err := s.loadLocked()
	_, exists := users[username]
	return exists, err
}

func (s *Store) Count() (int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	users, err := s.loadLocked()
	return len(users), err
}
