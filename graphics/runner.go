package graphics

import (
	"errors"
	"os/exec"
)

// CommandRunner runs an external command to completion and reports its exit
// status. The error return is reserved for spawn failures; a non-zero exit
// comes back as the status with a nil error.
type CommandRunner interface {
	Run(name string, args ...string) (int, error)
}

// Runner executes the service-control and initramfs commands. Tests swap in
// a fake.
var Runner CommandRunner = ExecRunner{}

type ExecRunner struct{}

func (ExecRunner) Run(name string, args ...string) (int, error) {
	err := exec.Command(name, args...).Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	return 0, err
}
