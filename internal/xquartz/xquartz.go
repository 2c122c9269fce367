// Package xquartz locates, launches, and waits for the XQuartz X server.
package xquartz

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// DownloadURL is where XQuartz releases are published.
const DownloadURL = "https://www.xquartz.org"

// ErrNotInstalled is returned when no XQuartz executable is resolvable
// on the command search path.
var ErrNotInstalled = errors.New("xquartz is not installed")

// binaryNames are the executable names probed on the search path.
// The XQuartz installer links both spellings into /opt/X11/bin.
var binaryNames = []string{"xquartz", "Xquartz"}

// Seams swapped out in tests.
var (
	lookPath          = exec.LookPath
	snapshotProcesses = gopsutilSnapshot
	runCommand        = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return exec.CommandContext(ctx, name, args...).CombinedOutput()
	}
)

// Locate resolves the XQuartz executable on the search path.
// Returns ErrNotInstalled when none of the known names resolve.
func Locate() (string, error) {
	for _, name := range binaryNames {
		if path, err := lookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrNotInstalled
}

// InstallInstructions returns user-facing remediation text for a
// missing XQuartz installation.
func InstallInstructions() string {
	return strings.Join([]string{
		"XQuartz is not installed. Install it with:",
		"",
		"  brew install --cask xquartz",
		"",
		"or download it from " + DownloadURL,
	}, "\n")
}

// Proc describes a running XQuartz process.
type Proc struct {
	PID     int32
	Name    string
	Started time.Time
}

// gopsutilSnapshot reads the live process table.
func gopsutilSnapshot() ([]Proc, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	entries := make([]Proc, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		entry := Proc{PID: p.Pid, Name: name}
		if created, err := p.CreateTime(); err == nil {
			entry.Started = time.UnixMilli(created)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Running queries the process table for an XQuartz instance by name.
// Returns nil when no instance is running.
func Running() (*Proc, error) {
	entries, err := snapshotProcesses()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	for _, entry := range entries {
		if strings.EqualFold(entry.Name, "XQuartz") {
			return &entry, nil
		}
	}

	return nil, nil
}

// Launch starts the XQuartz application via Launch Services.
func Launch(ctx context.Context, appName string) error {
	if appName == "" {
		appName = "XQuartz"
	}
	out, err := runCommand(ctx, "open", "-a", appName)
	if err != nil {
		return fmt.Errorf("open -a %s: %w (%s)", appName, err, strings.TrimSpace(string(out)))
	}
	return nil
}
