package config

const (
	KeyStoreFile       = "store.file"
	KeyStoreAutoBackup = "store.auto_backup"
	KeyStoreBackupDir  = "store.backup_dir"

	KeyMaxFailedAttempts = "security.max_failed_attempts"
	KeyUsernameMinLength = "security.username_min_length"
	KeyUsernameMaxLength = "security.username_max_length"
	KeyPasswordMinLength = "security.password_min_length"
	KeyPasswordMaxLength = "security.password_max_length"

	KeyClearScreen = "ui.clear_screen"

	DefaultStoreFile         = "users.json"
	DefaultBackupDir         = "backups"
	DefaultMaxFailedAttempts = 3
	DefaultUsernameMinLength = 3
	DefaultUsernameMaxLength = 30
	DefaultPasswordMinLength = 6
	DefaultPasswordMaxLength = 100
)
