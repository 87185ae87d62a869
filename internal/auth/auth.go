package auth

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/lthummus/loginthingie/internal/config"
	"github.com/lthummus/loginthingie/internal/loginfailure"
	"github.com/lthummus/loginthingie/internal/store"
	"github.com/lthummus/loginthingie/internal/user"
)

// Result is what the front ends get back from every operation. Expected
// failures (bad credentials, blocked user, validation problems) come back as
// OK == false with a message suitable for showing to the user; nothing here
// panics.
type Result struct {
	OK      bool
	Message string
}

// Info is the digest-free view of an account handed to the front ends.
type Info struct {
	Username  string
	CreatedAt string
}

type System struct {
	store    store.Store
	failures loginfailure.Counter
}

func New(s store.Store, failures loginfailure.Counter) *System {
	return &System{
		store:    s,
		failures: failures,
	}
}

func confInt(key string, fallback int) int {
	v := viper.GetInt(key)
	if v <= 0 {
		return fallback
	}
	return v
}

func blockedMessage() string {
	return fmt.Sprintf("User is blocked: exceeded the maximum of %d attempts", confInt(config.KeyMaxFailedAttempts, config.DefaultMaxFailedAttempts))
}

func (s *System) Register(username, password string) Result {
	if username == "" || password == "" {
		return Result{Message: "Username and password cannot be empty"}
	}

	usernameMin := confInt(config.KeyUsernameMinLength, config.DefaultUsernameMinLength)
	usernameMax := confInt(config.KeyUsernameMaxLength, config.DefaultUsernameMaxLength)
	passwordMin := confInt(config.KeyPasswordMinLength, config.DefaultPasswordMinLength)
	passwordMax := confInt(config.KeyPasswordMaxLength, config.DefaultPasswordMaxLength)

	if utf8.RuneCountInString(username) < usernameMin {
		return Result{Message: fmt.Sprintf("Username must be at least %d characters", usernameMin)}
	}
	if utf8.RuneCountInString(username) > usernameMax {
		return Result{Message: fmt.Sprintf("Username must be at most %d characters", usernameMax)}
	}
	if utf8.RuneCountInString(password) < passwordMin {
		return Result{Message: fmt.Sprintf("Password must be at least %d characters", passwordMin)}
	}
	if utf8.RuneCountInString(password) > passwordMax {
		return Result{Message: fmt.Sprintf("Password must be at most %d characters", passwordMax)}
	}

	err := s.store.Create(username, user.NewRecord(password))
	if errors.Is(err, store.ErrDuplicateUser) {
		return Result{Message: "User already exists"}
	}
	if err != nil {
		log.Error().Str("username", username).Err(err).Msg("could not save new user")
		return Result{Message: "Could not save the new user"}
	}

	log.Info().Str("username", username).Msg("registered new user")

	return Result{OK: true, Message: "User registered successfully"}
}

func (s *System) Authenticate(username, password string) Result {
	// the blocked check comes first so a blocked user learns nothing about
	// the stored credentials, not even whether the account exists
	if s.failures.IsUserBlocked(username) {
		log.Warn().Str("username", username).Msg("rejecting login attempt for blocked user")
		return Result{Message: blockedMessage()}
	}

	users, err := s.store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("could not read credential store; treating it as empty")
	}

	u, found := users[username]
	if !found {
		s.failures.RecordFailure(username)
		return Result{Message: "User not found"}
	}

	err = u.CheckPassword(password)
	if err == nil {
		s.failures.ClearFailures(username)
		log.Info().Str("username", username).Msg("login successful")
		return Result{OK: true, Message: "Login successful"}
	}

	if !errors.Is(err, user.ErrIncorrectPassword) {
		log.Warn().Str("username", username).Err(err).Msg("stored credential is unusable")
	}

	remaining := s.failures.RecordFailure(username)
	if remaining <= 0 {
		log.Warn().Str("username", username).Msg("user is now blocked")
		return Result{Message: blockedMessage()}
	}

	return Result{Message: fmt.Sprintf("Incorrect password. You have %d attempts remaining", remaining)}
}

func (s *System) UserExists(username string) bool {
	exists, err := s.store.Exists(username)
	if err != nil {
		log.Warn().Err(err).Msg("could not read credential store")
	}
	return exists
}

func (s *System) UserCount() int {
	count, err := s.store.Count()
	if err != nil {
		log.Warn().Err(err).Msg("could not read credential store")
	}
	return count
}

// UnblockUser clears recorded login failures for username and reports
// whether there were any. It never touches the credential store.
func (s *System) UnblockUser(username string) bool {
	cleared := s.failures.Unblock(username)
	if cleared {
		log.Info().Str("username", username).Msg("cleared login failures for user")
	}
	return cleared
}

func (s *System) UserInfo(username string) (Info, bool) {
	users, err := s.store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("could not read credential store")
	}

	u, found := users[username]
	if !found {
		return Info{}, false
	}

	return Info{Username: username, CreatedAt: u.CreatedAt}, true
}

func (s *System) Users() []Info {
	users, err := s.store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("could not read credential store")
	}

	usernames := make([]string, 0, len(users))
	for username := range users {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)

	ret := make([]Info, len(usernames))
	for i, username := range usernames {
		ret[i] = Info{Username: username, CreatedAt: users[username].CreatedAt}
	}

	return ret
}
