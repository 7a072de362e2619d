//go:build !windows

package capture

import "os/exec"

// hideWindow is a no-op outside Windows; child processes never get a console there.
func hideWindow(cmd *exec.Cmd) {}
