//go:build !unix

package adapters

import (
	"errors"
	"os"
	"os/exec"
)

func setProcessGroup(*exec.Cmd) {}

// killProcessTree kills the direct child only; cmd.WaitDelay closes any
// pipes a surviving descendant still holds.
func killProcessTree(cmd *exec.Cmd) error {
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}
