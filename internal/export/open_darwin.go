//go:build darwin

package export

import "os/exec"

func openCommand(path string) (*exec.Cmd, error) {
	return exec.Command("open", path), nil
}
