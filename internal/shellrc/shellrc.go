// Package shellrc resolves and updates the user's shell startup file.
package shellrc

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Resolve returns the startup file for the user's login shell, derived
// from $SHELL. macOS login shells read .bash_profile rather than
// .bashrc, hence the bash mapping.
func Resolve() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch filepath.Base(os.Getenv("SHELL")) {
	case "zsh":
		return filepath.Join(home, ".zshrc"), nil
	case "bash":
		return filepath.Join(home, ".bash_profile"), nil
	default:
		return filepath.Join(home, ".profile"), nil
	}
}

// AppendLine appends line to the rc file at path unless an identical
// line is already present. Reports whether the file was modified.
// The file is created if it does not exist.
func AppendLine(path, line string) (bool, error) {
	present, err := Contains(path, line)
	if err != nil {
		return false, err
	}
	if present {
		return false, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return false, err
	}
	return true, nil
}

// Contains reports whether the file has a line equal to want after
// whitespace trimming. A missing file contains nothing.
func Contains(path, want string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	want = strings.TrimSpace(want)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == want {
			return true, nil
		}
	}
	return false, scanner.Err()
}
