package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

var (
	Lock sync.RWMutex

	initLock  sync.Mutex
	hasInit   bool
	initError error
)

func IsDebugLoggingEnabled() bool {
	return os.Getenv("DEBUG_LOG") == "true"
}

func Init() error {
	initLock.Lock()
	defer initLock.Unlock()

	if hasInit {
		return initError
	}

	Lock.Lock()
	defer Lock.Unlock()

	configFilePath := os.Getenv("CONFIG_FILE_PATH")
	if configFilePath == "" {
		viper.SetConfigName("loginthingie")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "loginthingie"))
		}
	} else {
		viper.SetConfigFile(configFilePath)
	}

	err := viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			hasInit = true
			initError = err
			return initError
		}

		log.Fatal().Str("config_file", viper.ConfigFileUsed()).Err(err).Msg("could not read config")
	}
	log.Info().Str("config_file_path", viper.ConfigFileUsed()).Msg("initialized configuration")
	viper.OnConfigChange(notifyUpdateListeners)
	viper.WatchConfig()

	hasInit = true
	return nil
}

func ValidateConfig() []string {
	var errorsFound []string

	if viper.IsSet(KeyStoreFile) && viper.GetString(KeyStoreFile) == "" {
		log.Error().Msg("store.file is set but empty")
		errorsFound = append(errorsFound, "`store.file` must not be empty")
	}

	if viper.IsSet(KeyMaxFailedAttempts) && viper.GetInt(KeyMaxFailedAttempts) < 1 {
		log.Error().Int("max_failed_attempts", viper.GetInt(KeyMaxFailedAttempts)).Msg("security.max_failed_attempts must be at least 1")
		errorsFound = append(errorsFound, "`security.max_failed_attempts` must be at least 1")
	}

	usernameMin := viper.GetInt(KeyUsernameMinLength)
	if usernameMin == 0 {
		usernameMin = DefaultUsernameMinLength
	}
	usernameMax := viper.GetInt(KeyUsernameMaxLength)
	if usernameMax == 0 {
		usernameMax = DefaultUsernameMaxLength
	}
	if viper.IsSet(KeyUsernameMinLength) && viper.GetInt(KeyUsernameMinLength) < 1 {
		log.Error().Int("username_min_length", viper.GetInt(KeyUsernameMinLength)).Msg("security.username_min_length must be at least 1")
		errorsFound = append(errorsFound, "`security.username_min_length` must be at least 1")
	} else if usernameMin > usernameMax {
		log.Error().Int("username_min_length", usernameMin).Int("username_max_length", usernameMax).Msg("username length bounds are inverted")
		errorsFound = append(errorsFound, "`security.username_min_length` must not exceed `security.username_max_length`")
	}

	passwordMin := viper.GetInt(KeyPasswordMinLength)
	if passwordMin == 0 {
		passwordMin = DefaultPasswordMinLength
	}
	passwordMax := viper.GetInt(KeyPasswordMaxLength)
	if passwordMax == 0 {
		passwordMax = DefaultPasswordMaxLength
	}
	if viper.IsSet(KeyPasswordMinLength) && viper.GetInt(KeyPasswordMinLength) < 1 {
		log.Error().Int("password_min_length", viper.GetInt(KeyPasswordMinLength)).Msg("security.password_min_length must be at least 1")
		errorsFound = append(errorsFound, "`security.password_min_length` must be at least 1")
	} else if passwordMin > passwordMax {
		log.Error().Int("password_min_length", passwordMin).Int("password_max_length", passwordMax).Msg("password length bounds are inverted")
		errorsFound = append(errorsFound, "`security.password_min_length` must not exceed `security.password_max_length`")
	}

	if viper.GetBool(KeyStoreAutoBackup) && viper.IsSet(KeyStoreBackupDir) && viper.GetString(KeyStoreBackupDir) == "" {
		log.Error().Msg("store.backup_dir must not be empty when store.auto_backup is enabled")
		errorsFound = append(errorsFound, "`store.backup_dir` must not be empty when `store.auto_backup` is enabled")
	}

	return errorsFound
}

func defaultSettings() map[string]any {
	return map[string]any{
		"store": map[string]any{
			"file":        DefaultStoreFile,
			"auto_backup": false,
			"backup_dir":  DefaultBackupDir,
		},
		"security": map[string]any{
			"max_failed_attempts": DefaultMaxFailedAttempts,
			"username_min_length": DefaultUsernameMinLength,
			"username_max_length": DefaultUsernameMaxLength,
			"password_min_length": DefaultPasswordMinLength,
			"password_max_length": DefaultPasswordMaxLength,
		},
		"ui": map[string]any{
			"clear_screen": true,
		},
	}
}

func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: WriteDefaultConfig: %s already exists", path)
	}

	data, err := yaml.Marshal(defaultSettings())
	if err != nil {
		log.Error().Err(err).Msg("could not marshal settings")
		return err
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		log.Error().Err(err).Str("config_file_path", path).Msg("could not write file")
		return err
	}

	log.Info().Str("config_file_path", path).Int("bytes_written", len(data)).Msg("wrote config file")

	return nil
}
