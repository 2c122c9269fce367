// Package check runs GUI environment diagnostics and renders a report.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/2dir-insight/xbridge/internal/x11"
	"github.com/2dir-insight/xbridge/internal/xquartz"
)

// Result is the outcome of a single diagnostic.
type Result struct {
	Name   string
	Passed bool
	Detail string
	Hint   string // Remediation, shown only on failure
}

// Check is a named diagnostic.
type Check struct {
	Name string
	Run  func(ctx context.Context) Result
}

// requiredPackages are the system libraries a Qt GUI needs inside a
// Debian-family container.
var requiredPackages = []string{
	"libgl1-mesa-glx",
	"libxcb-xinerama0",
	"fonts-dejavu-core",
}

// runCommand executes a command and returns its combined output.
// Swapped out in tests.
var runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// All returns the diagnostics appropriate for the current platform.
func All() []Check {
	checks := []Check{
		DisplayVariable(),
		X11Socket(""),
	}
	switch runtime.GOOS {
	case "darwin":
		checks = append(checks, XQuartzInstalled(), XQuartzRunning())
	case "linux":
		checks = append(checks, SystemPackages(requiredPackages))
	}
	return checks
}

// DisplayVariable verifies that DISPLAY is set.
func DisplayVariable() Check {
	return Check{
		Name: "DISPLAY variable",
		Run: func(ctx context.Context) Result {
			display := os.Getenv("DISPLAY")
			if display == "" {
				return Result{
					Name:   "DISPLAY variable",
					Passed: false,
					Detail: "DISPLAY is not set",
					Hint:   "run `xbridge setup`, or export DISPLAY=host.docker.internal:0",
				}
			}
			return Result{
				Name:   "DISPLAY variable",
				Passed: true,
				Detail: "DISPLAY=" + display,
			}
		},
	}
}

// X11Socket verifies that an X server socket exists under dir
// (the standard /tmp/.X11-unix when dir is empty).
func X11Socket(dir string) Check {
	return Check{
		Name: "X11 socket",
		Run: func(ctx context.Context) Result {
			sockets, err := x11.Sockets(dir)
			if err != nil {
				return Result{
					Name:   "X11 socket",
					Passed: false,
					Detail: fmt.Sprintf("cannot read socket directory: %v", err),
				}
			}
			if len(sockets) == 0 {
				return Result{
					Name:   "X11 socket",
					Passed: false,
					Detail: "no X server sockets found",
					Hint:   "start the X server (XQuartz on macOS), then re-run",
				}
			}
			return Result{
				Name:   "X11 socket",
				Passed: true,
				Detail: fmt.Sprintf("%d socket(s) available", len(sockets)),
			}
		},
	}
}

// XQuartzInstalled verifies the XQuartz binary resolves on the path.
func XQuartzInstalled() Check {
	return Check{
		Name: "XQuartz installed",
		Run: func(ctx context.Context) Result {
			path, err := xquartz.Locate()
			if err != nil {
				return Result{
					Name:   "XQuartz installed",
					Passed: false,
					Detail: "no XQuartz executable on $PATH",
					Hint:   "brew install --cask xquartz",
				}
			}
			return Result{
				Name:   "XQuartz installed",
				Passed: true,
				Detail: path,
			}
		},
	}
}

// XQuartzRunning verifies an XQuartz instance is in the process table.
func XQuartzRunning() Check {
	return Check{
		Name: "XQuartz running",
		Run: func(ctx context.Context) Result {
			proc, err := xquartz.Running()
			if err != nil {
				return Result{
					Name:   "XQuartz running",
					Passed: false,
					Detail: fmt.Sprintf("cannot query process table: %v", err),
				}
			}
			if proc == nil {
				return Result{
					Name:   "XQuartz running",
					Passed: false,
					Detail: "XQuartz is not running",
					Hint:   "open -a XQuartz, or run `xbridge setup`",
				}
			}
			return Result{
				Name:   "XQuartz running",
				Passed: true,
				Detail: fmt.Sprintf("pid %d", proc.PID),
			}
		},
	}
}

// SystemPackages verifies the given packages are installed according to
// dpkg. On systems without dpkg the check passes, since the package
// requirement only applies to Debian-family containers.
func SystemPackages(packages []string) Check {
	return Check{
		Name: "system packages",
		Run: func(ctx context.Context) Result {
			var missing []string
			for _, pkg := range packages {
				if _, err := runCommand(ctx, "dpkg", "-s", pkg); err != nil {
					if isNotFound(err) {
						// Non-Debian system: requirement doesn't apply.
						return Result{
							Name:   "system packages",
							Passed: true,
							Detail: "dpkg not available, skipped",
						}
					}
					missing = append(missing, pkg)
				}
			}
			if len(missing) > 0 {
				return Result{
					Name:   "system packages",
					Passed: false,
					Detail: "missing: " + strings.Join(missing, ", "),
					Hint:   "apt-get install " + strings.Join(missing, " "),
				}
			}
			return Result{
				Name:   "system packages",
				Passed: true,
				Detail: fmt.Sprintf("%d package(s) present", len(packages)),
			}
		},
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}
