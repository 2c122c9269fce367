package x11

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// runCommand executes a command and returns its combined output.
// Swapped out in tests.
var runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Grant authorizes X11 client connections from the given host by
// invoking `xhost +<host>`. The X server the grant applies to is
// selected by the DISPLAY variable in the environment.
func Grant(ctx context.Context, host string) error {
	out, err := runCommand(ctx, "xhost", "+"+host)
	if err != nil {
		return fmt.Errorf("xhost +%s: %w (%s)", host, err, strings.TrimSpace(string(out)))
	}
	return nil
}
