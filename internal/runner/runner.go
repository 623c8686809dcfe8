// Package runner executes external commands and captures their output.
package runner

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// Result holds the outcome of one command invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Report returns stdout for a successful command and stderr otherwise.
func (r Result) Report() string {
	if r.ExitCode == 0 {
		return r.Stdout
	}

	return r.Stderr
}

// Runner runs a command given as an argument vector.
type Runner interface {
	Run(argv []string) (Result, error)
}

// Func adapts a function to the Runner interface.
type Func func(argv []string) (Result, error)

// Run calls f.
func (f Func) Run(argv []string) (Result, error) {
	return f(argv)
}

// ExecRunner runs commands as real subprocesses. Commands are always
// invoked directly with an argument vector, never through a shell.
type ExecRunner struct{}

// New returns a Runner backed by os/exec.
func New() ExecRunner {
	return ExecRunner{}
}

// Run spawns the command synchronously and waits for it to terminate.
// A non-zero exit code is reported through the Result, not as an error;
// only a failure to start the process returns an error.
func (ExecRunner) Run(argv []string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, errors.New("empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	res := Result{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// The process never started.
			return Result{}, fmt.Errorf("failed to run %q: %w", argv[0], err)
		}
		res.ExitCode = exitErr.ExitCode()
	}

	log.Debug().
		Str("event", "command_finished").
		Str("command", strings.Join(argv, " ")).
		Int("exit_code", res.ExitCode).
		Msg("external command finished")

	return res, nil
}
