//go:build linux || freebsd || openbsd || netbsd || dragonfly

package export

import "os/exec"

func openCommand(path string) (*exec.Cmd, error) {
	return exec.Command("xdg-open", path), nil
}
