// Package x11 models the X11 display target and host access control.
package x11

import (
	"fmt"
	"os"
)

// Display identifies the X server a client should render to,
// in the conventional host:number form of the DISPLAY variable.
type Display struct {
	Host   string
	Number int
}

// String returns the DISPLAY value, e.g. "host.docker.internal:0".
func (d Display) String() string {
	return fmt.Sprintf("%s:%d", d.Host, d.Number)
}

// ExportLine returns the shell export statement for this display.
func (d Display) ExportLine() string {
	return "export DISPLAY=" + d.String()
}

// Export sets DISPLAY in the current process environment. Child
// processes (xhost in particular) inherit it.
func (d Display) Export() error {
	return os.Setenv("DISPLAY", d.String())
}
