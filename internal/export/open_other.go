//go:build !linux && !freebsd && !openbsd && !netbsd && !dragonfly && !darwin && !windows

package export

import (
	"os/exec"
	"runtime"

	"github.com/hpungsan/jot/internal/errors"
)

func openCommand(path string) (*exec.Cmd, error) {
	return nil, errors.NewExport("opening files is not supported on " + runtime.GOOS)
}
