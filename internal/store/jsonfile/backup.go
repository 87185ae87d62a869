package jsonfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/lthummus/loginthingie/internal/config"
)

// backupLocked copies the current store file aside before it gets
// overwritten. Backups are best effort; a failure never blocks the save.
func (s *Store) backupLocked() {
	dir := viper.GetString(config.KeyStoreBackupDir)
	if dir == "" {
		dir = config.DefaultBackupDir
	}

	data, err := os.ReadFile(s.filename)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		log.Warn().Str("store_file", s.filename).Err(err).Msg("could not read store file for backup")
		return
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		log.Warn().Str("backup_dir", dir).Err(err).Msg("could not create backup directory")
		return
	}

	name := fmt.Sprintf("users-%s-%s.json", time.Now().UTC().Format("20060102T150405"), uuid.NewString()[:8])
	target := filepath.Join(dir, name)

	if err := os.WriteFile(target, data, 0600); err != nil {
		log.Warn().Str("backup_file", target).Err(err).Msg("could not write store backup")
		return
	}

	log.Debug().Str("backup_file", target).Msg("wrote store backup")
}
