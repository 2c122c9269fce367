package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/2dir-insight/xbridge/internal/shellrc"
	"github.com/2dir-insight/xbridge/internal/x11"
	"github.com/2dir-insight/xbridge/internal/xquartz"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current X11 forwarding state",
	Long: `Show whether XQuartz is installed and running, the effective DISPLAY
target, and whether the shell profile persists it.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	// Installation
	binPath, err := xquartz.Locate()
	if err != nil {
		fmt.Println("XQuartz: not installed")
	} else {
		fmt.Printf("XQuartz: installed (%s)\n", binPath)
	}

	// Process state
	proc, err := xquartz.Running()
	switch {
	case err != nil:
		logger.Warn("cannot query process table", "error", err)
	case proc == nil:
		fmt.Println("XQuartz process: not running")
	case proc.Started.IsZero():
		fmt.Printf("XQuartz process: running (pid %d)\n", proc.PID)
	default:
		fmt.Printf("XQuartz process: running (pid %d, started %s)\n",
			proc.PID, humanize.Time(proc.Started))
	}

	// Display target
	display := x11.Display{Host: cfg.Display.Host, Number: cfg.Display.Number}
	current := os.Getenv("DISPLAY")
	fmt.Printf("Configured display target: %s\n", display)
	if current == "" {
		fmt.Println("DISPLAY: not set in this shell")
	} else {
		fmt.Printf("DISPLAY: %s\n", current)
	}

	// X server sockets
	sockets, err := x11.Sockets("")
	if err != nil {
		logger.Warn("cannot read socket directory", "error", err)
	} else {
		fmt.Printf("X server sockets: %d\n", len(sockets))
	}

	// Shell profile persistence
	rcPath := cfg.Shell.RCFile
	if rcPath == "" {
		rcPath, err = shellrc.Resolve()
		if err != nil {
			logger.Warn("cannot resolve shell profile", "error", err)
			return nil
		}
	}
	persisted, err := shellrc.Contains(rcPath, display.ExportLine())
	if err != nil {
		logger.Warn("cannot read shell profile", "path", rcPath, "error", err)
		return nil
	}
	if persisted {
		fmt.Printf("Shell profile: %s exports DISPLAY\n", rcPath)
	} else {
		fmt.Printf("Shell profile: %s does not export DISPLAY (run `xbridge setup`)\n", rcPath)
	}

	return nil
}
