//go:build windows

package export

import "os/exec"

// The empty argument is the window title consumed by start.
func openCommand(path string) (*exec.Cmd, error) {
	return exec.Command("cmd", "/c", "start", "", path), nil
}
