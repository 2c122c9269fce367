package check

import "strings"

// TroubleshootingGuide returns remediation steps for the given
// platform ("darwin", "linux", anything else gets the Windows text).
func TroubleshootingGuide(goos string) string {
	switch goos {
	case "darwin":
		return strings.Join([]string{
			"macOS:",
			"  1. Install XQuartz: brew install --cask xquartz",
			"  2. Start XQuartz and enable X11 forwarding",
			"  3. Set the display target: export DISPLAY=host.docker.internal:0",
			"  4. Authorize clients: xhost +host.docker.internal",
		}, "\n")
	case "linux":
		return strings.Join([]string{
			"Linux:",
			"  1. Enable X11 forwarding: export DISPLAY=:0",
			"  2. Authorize container clients: xhost +local:docker",
			"  3. If using a dev container, rebuild it after changing the display setup",
		}, "\n")
	default:
		return strings.Join([]string{
			"Windows:",
			"  1. Install an X server (VcXsrv or Xming)",
			"  2. Start it with access control disabled",
			"  3. Set the display target: export DISPLAY=host.docker.internal:0.0",
		}, "\n")
	}
}
