package x11

import "path/filepath"

// SocketDir is where X servers place their unix domain sockets.
const SocketDir = "/tmp/.X11-unix"

// Sockets returns the X server sockets present under dir. A missing
// directory is reported as no sockets, not an error, since that is the
// normal state before any X server has started.
func Sockets(dir string) ([]string, error) {
	if dir == "" {
		dir = SocketDir
	}
	return filepath.Glob(filepath.Join(dir, "X*"))
}
