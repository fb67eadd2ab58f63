package export

import (
	"os/exec"

	"github.com/hpungsan/jot/internal/errors"
)

// startCommand launches cmd without waiting for it; replaced in tests.
var startCommand = func(cmd *exec.Cmd) error {
	return cmd.Start()
}

// Open launches the platform's default application for path.
func Open(path string) error {
	cmd, err := openCommand(path)
	if err != nil {
		return err
	}
	if err := startCommand(cmd); err != nil {
		return errors.NewExport("failed to open " + path).Wrap(err)
	}
	return nil
}
