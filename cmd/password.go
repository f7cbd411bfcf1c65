package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/autobrr/pwdigest/internal/utils"
)

// secret is a password together with the label shown in place of it
type secret struct {
	label    string
	password []byte
}

// terminalFd returns the file descriptor of r if it is a terminal
func terminalFd(r io.Reader) (int, bool) {
	f, ok := r.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// promptPassword reads a single password from the terminal without echo
func promptPassword(fd int, prompt string, stderr io.Writer) ([]byte, error) {
	fmt.Fprint(stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(stderr)
	if err != nil {
		return nil, fmt.Errorf("could not read password: %w", err)
	}
	return password, nil
}

// readSecrets returns the passwords given as args. Without args it prompts
// on a terminal, or reads one password per line from in. At most limit
// passwords are read from in; zero means no limit.
func readSecrets(args []string, in io.Reader, stderr io.Writer, limit int) ([]secret, error) {
	if len(args) > 0 {
		secrets := make([]secret, len(args))
		for i, arg := range args {
			secrets[i] = secret{label: utils.MaskSecret(arg), password: []byte(arg)}
		}
		return secrets, nil
	}

	if fd, ok := terminalFd(in); ok {
		password, err := promptPassword(fd, "Password: ", stderr)
		if err != nil {
			return nil, err
		}
		return []secret{{label: "-", password: password}}, nil
	}

	var secrets []secret
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if text == "" {
			continue
		}
		secrets = append(secrets, secret{
			label:    fmt.Sprintf("-:%d", line),
			password: []byte(text),
		})
		if limit > 0 && len(secrets) == limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read passwords: %w", err)
	}
	if len(secrets) == 0 {
		return nil, errors.New("no password given")
	}
	return secrets, nil
}
