package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/lthummus/loginthingie/internal/auth"
	"github.com/lthummus/loginthingie/internal/config"
	"github.com/lthummus/loginthingie/internal/loginfailure"
	"github.com/lthummus/loginthingie/internal/notices"
	"github.com/lthummus/loginthingie/internal/store/jsonfile"
)

const headerWidth = 60

type Shell struct {
	auth        *auth.System
	in          *bufio.Reader
	out         io.Writer
	currentUser string
}

func New(system *auth.System) *Shell {
	return &Shell{
		auth: system,
		in:   bufio.NewReader(os.Stdin),
		out:  os.Stdout,
	}
}

// RunShell wires everything together and runs the console until the user
// exits.
func RunShell() {
	err := config.Init()
	var fileNotFoundError viper.ConfigFileNotFoundError
	if errors.As(err, &fileNotFoundError) {
		log.Warn().Msg("no config file found; using defaults (run `loginthingie writeconfig` to create one)")
	}

	configErrors := config.ValidateConfig()
	if configErrors != nil {
		log.Error().Msg("invalid configuration")
		for _, curr := range configErrors {
			fmt.Fprintf(os.Stderr, "  - %s\n", curr)
		}
		os.Exit(1)
	}

	system := auth.New(jsonfile.NewFromConfig(), loginfailure.NewInMemoryCounter())

	New(system).Run()
}

// Run loops over the menus until the user exits or input runs out.
func (s *Shell) Run() {
	for {
		if s.currentUser == "" {
			if done := s.mainMenu(); done {
				return
			}
		} else {
			if done := s.userMenu(); done {
				return
			}
		}
	}
}

func (s *Shell) mainMenu() bool {
	s.clearScreen()
	s.printHeader("LOGIN SYSTEM")

	for _, msg := range notices.GetMessages() {
		fmt.Fprintf(s.out, "! %s\n", msg)
	}

	fmt.Fprintln(s.out, "1. Register a new user")
	fmt.Fprintln(s.out, "2. Log in")
	fmt.Fprintln(s.out, "3. Show stats")
	fmt.Fprintln(s.out, "4. Exit")

	choice, err := s.readLine("Choose an option (1-4): ")
	if err != nil {
		return true
	}

	switch choice {
	case "1":
		s.registerFlow()
	case "2":
		s.loginFlow()
	case "3":
		s.showStats()
	case "4":
		fmt.Fprintln(s.out, "Goodbye!")
		return true
	default:
		fmt.Fprintln(s.out, "Invalid option")
		s.pause()
	}

	return false
}

func (s *Shell) userMenu() bool {
	s.clearScreen()
	s.printHeader("SESSION: " + s.currentUser)

	fmt.Fprintln(s.out, "1. Account info")
	fmt.Fprintln(s.out, "2. Switch user")
	fmt.Fprintln(s.out, "3. Show stats")
	fmt.Fprintln(s.out, "4. Log out")
	fmt.Fprintln(s.out, "5. Unblock a user")

	choice, err := s.readLine("Choose an option (1-5): ")
	if err != nil {
		return true
	}

	switch choice {
	case "1":
		s.accountInfo()
	case "2":
		s.currentUser = ""
		s.loginFlow()
	case "3":
		s.showStats()
	case "4":
		fmt.Fprintln(s.out, "Logged out")
		s.currentUser = ""
		s.pause()
	case "5":
		s.unblockFlow()
	default:
		fmt.Fprintln(s.out, "Invalid option")
		s.pause()
	}

	return false
}

func (s *Shell) clearScreen() {
	if viper.IsSet(config.KeyClearScreen) && !viper.GetBool(config.KeyClearScreen) {
		return
	}
	fmt.Fprint(s.out, "\033[2J\033[H")
}

func (s *Shell) printHeader(title string) {
	line := strings.Repeat("=", headerWidth)
	fmt.Fprintln(s.out, line)
	fmt.Fprintf(s.out, "  %s\n", title)
	fmt.Fprintln(s.out, line)
}

func (s *Shell) pause() {
	fmt.Fprint(s.out, "\nPress Enter to continue...")
	_, _ = s.in.ReadString('\n')
	fmt.Fprintln(s.out)
}
