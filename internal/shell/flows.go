package shell

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/spf13/viper"

	"github.com/lthummus/loginthingie/internal/config"
)

func (s *Shell) registerFlow() {
	s.clearScreen()
	s.printHeader("REGISTER NEW USER")

	username, err := s.readLine("Username: ")
	if err != nil {
		return
	}

	usernameMax := viper.GetInt(config.KeyUsernameMaxLength)
	if usernameMax <= 0 {
		usernameMax = config.DefaultUsernameMaxLength
	}
	for utf8.RuneCountInString(username) > usernameMax {
		fmt.Fprintf(s.out, "Username must be at most %d characters\n", usernameMax)
		username, err = s.readLine("Username: ")
		if err != nil {
			return
		}
	}

	if s.auth.UserExists(username) {
		fmt.Fprintf(s.out, "User %q already exists\n", username)
		s.pause()
		return
	}

	password, err := s.promptPassword("Password: ")
	if err != nil {
		return
	}

	confirm, err := s.promptPassword("Confirm password: ")
	if err != nil {
		return
	}

	if password != confirm {
		fmt.Fprintln(s.out, "Passwords do not match")
		s.pause()
		return
	}

	res := s.auth.Register(username, password)
	fmt.Fprintln(s.out, res.Message)
	s.pause()
}

func (s *Shell) loginFlow() {
	s.clearScreen()
	s.printHeader("LOG IN")

	username, err := s.readLine("Username: ")
	if err != nil {
		return
	}

	password, err := s.promptPassword("Password: ")
	if err != nil {
		return
	}

	res := s.auth.Authenticate(username, password)
	fmt.Fprintln(s.out, res.Message)
	if res.OK {
		s.currentUser = username
	}
	s.pause()
}

func (s *Shell) accountInfo() {
	s.clearScreen()
	s.printHeader("ACCOUNT INFO")

	info, found := s.auth.UserInfo(s.currentUser)
	if !found {
		fmt.Fprintf(s.out, "User %q is no longer in the store\n", s.currentUser)
		s.pause()
		return
	}

	created := info.CreatedAt
	if t, err := time.Parse(time.RFC3339, created); err == nil {
		created = t.Format("2006-01-02 15:04:05")
	}

	fmt.Fprintf(s.out, "Username: %s\n", info.Username)
	fmt.Fprintf(s.out, "Created:  %s\n", created)
	s.pause()
}

func (s *Shell) showStats() {
	s.clearScreen()
	s.printHeader("STATS")

	storeFile := viper.GetString(config.KeyStoreFile)
	if storeFile == "" {
		storeFile = config.DefaultStoreFile
	}

	failureLimit := viper.GetInt(config.KeyMaxFailedAttempts)
	if failureLimit <= 0 {
		failureLimit = config.DefaultMaxFailedAttempts
	}

	fmt.Fprintf(s.out, "Registered users: %d\n", s.auth.UserCount())
	fmt.Fprintln(s.out, "Password digests: SHA-256")
	fmt.Fprintf(s.out, "Login failure limit: %d\n", failureLimit)
	fmt.Fprintf(s.out, "Credential store: %s\n", storeFile)
	s.pause()
}

func (s *Shell) unblockFlow() {
	s.clearScreen()
	s.printHeader("UNBLOCK USER")

	username, err := s.readLine("Username to unblock: ")
	if err != nil {
		return
	}

	if s.auth.UnblockUser(username) {
		fmt.Fprintf(s.out, "Cleared login failures for %q\n", username)
	} else {
		fmt.Fprintf(s.out, "No login failures recorded for %q\n", username)
	}
	s.pause()
}
