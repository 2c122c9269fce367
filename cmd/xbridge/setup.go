package main

import (
	"errors"
	"fmt"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/2dir-insight/xbridge/internal/shellrc"
	"github.com/2dir-insight/xbridge/internal/x11"
	"github.com/2dir-insight/xbridge/internal/xquartz"
)

var setupOpts struct {
	rcFile       string
	noPersist    bool
	openDownload bool
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure host X11 forwarding for container GUI apps",
	Long: `Configure the host so containerized GUI applications can render on
the host display.

The setup verifies XQuartz is installed (and fails with installation
guidance when it isn't), starts XQuartz when it isn't running, exports
DISPLAY pointing at the Docker host alias, persists the export to the
shell profile, and authorizes X11 connections via xhost.

Only a missing XQuartz installation is fatal. Later steps report
problems and continue, since a partially configured host is still
usable for debugging.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)

	setupCmd.Flags().StringVar(&setupOpts.rcFile, "rc-file", "",
		"Shell profile to persist the DISPLAY export to (default: derived from $SHELL)")
	setupCmd.Flags().BoolVar(&setupOpts.noPersist, "no-persist", false,
		"Do not write the DISPLAY export to the shell profile")
	setupCmd.Flags().BoolVar(&setupOpts.openDownload, "open-download", false,
		"Open the XQuartz download page in the browser when XQuartz is missing")
}

func runSetup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Step 1: XQuartz must be installed. This is the only fatal path.
	binPath, err := xquartz.Locate()
	if err != nil {
		if errors.Is(err, xquartz.ErrNotInstalled) {
			fmt.Println(xquartz.InstallInstructions())
			if setupOpts.openDownload {
				if berr := browser.OpenURL(xquartz.DownloadURL); berr != nil {
					logger.Warn("failed to open download page", "error", berr)
				}
			}
		}
		return err
	}
	logger.Debug("xquartz binary found", "path", binPath)

	// Step 2: make sure an instance is running.
	proc, err := xquartz.Running()
	if err != nil {
		logger.Warn("cannot query process table", "error", err)
	}
	if proc == nil {
		fmt.Println("Starting XQuartz...")
		if err := xquartz.Launch(ctx, cfg.XQuartz.AppName); err != nil {
			logger.Warn("failed to launch XQuartz", "error", err)
		}
		xquartz.WaitReady(ctx, "", cfg.LaunchWait())
	} else {
		fmt.Printf("XQuartz is already running (pid %d)\n", proc.PID)
	}

	// Step 3: point DISPLAY at the container-visible host alias.
	display := x11.Display{Host: cfg.Display.Host, Number: cfg.Display.Number}
	if err := display.Export(); err != nil {
		logger.Warn("failed to set DISPLAY", "error", err)
	}
	fmt.Printf("DISPLAY set to %s\n", display)

	if cfg.Shell.Persist && !setupOpts.noPersist {
		persistDisplay(display)
	}

	// Step 4: authorize X11 clients. Runs on every setup pass so a
	// reset access control list is repaired by a rerun.
	hosts := append([]string{cfg.Display.Host}, cfg.Display.ExtraAccess...)
	for _, host := range hosts {
		if err := x11.Grant(ctx, host); err != nil {
			logger.Warn("xhost grant failed", "host", host, "error", err)
			continue
		}
		fmt.Printf("Authorized X11 connections from %s\n", host)
	}

	printNextSteps()
	return nil
}

// persistDisplay appends the DISPLAY export to the shell profile.
// Failures are reported but never abort the setup.
func persistDisplay(display x11.Display) {
	rcPath := setupOpts.rcFile
	if rcPath == "" {
		rcPath = cfg.Shell.RCFile
	}
	if rcPath == "" {
		var err error
		rcPath, err = shellrc.Resolve()
		if err != nil {
			logger.Warn("cannot resolve shell profile", "error", err)
			return
		}
	}

	added, err := shellrc.AppendLine(rcPath, display.ExportLine())
	if err != nil {
		logger.Warn("failed to update shell profile", "path", rcPath, "error", err)
		return
	}
	if added {
		fmt.Printf("Appended %q to %s\n", display.ExportLine(), rcPath)
	} else {
		fmt.Printf("%s already exports DISPLAY, skipping\n", rcPath)
	}
}

func printNextSteps() {
	fmt.Println()
	fmt.Println("Inside the container, verify the environment and start the GUI:")
	fmt.Println("  python scripts/check_gui_environment.py")
	fmt.Println("  python scripts/run_gui.py")
}
