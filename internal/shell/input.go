package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func (s *Shell) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)

	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// promptPassword reads a password from the terminal without echo. The input
// is deliberately not trimmed; leading and trailing spaces are part of the
// password.
func (s *Shell) promptPassword(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)

	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(s.out)
	if err != nil {
		return "", err
	}

	return string(pw), nil
}
