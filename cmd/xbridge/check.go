package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/2dir-insight/xbridge/internal/check"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Diagnose the GUI environment",
	Long: `Run GUI environment diagnostics and print a report.

Checks the DISPLAY variable, the X server socket, and platform-specific
requirements (XQuartz on macOS, required system packages on
Debian-family Linux). Prints a troubleshooting guide when any check
fails.

Exit status is 0 when every check passes, 1 otherwise.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	report := check.RunAll(ctx, check.All())
	report.Render(os.Stdout)

	if !report.Passed() {
		fmt.Println()
		fmt.Println(check.TroubleshootingGuide(runtime.GOOS))
		return errors.New("environment checks failed")
	}
	return nil
}
