package plugins

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/alc-ux/plugman/internal/runner"
)

// Lifecycle installs and uninstalls plugin packages through an external
// package manager. A descriptor's install state is taken from the package
// manager's exit code; callers wanting a fresh environment probe use
// Descriptor.Reprobe.
type Lifecycle struct {
	run      runner.Runner
	binary   string
	userFlag string
}

// NewLifecycle returns a lifecycle manager invoking the given package
// manager binary. userFlag, when non-empty, is appended to every install
// and uninstall command to confine changes to the current user.
func NewLifecycle(run runner.Runner, binary, userFlag string) *Lifecycle {
	return &Lifecycle{run: run, binary: binary, userFlag: userFlag}
}

// Install installs the descriptor's package. Exit code 0 marks the
// descriptor installed and the result reports stdout; any other exit code
// marks it not installed and the result reports stderr. An error is
// returned only when the package manager cannot be started.
func (l *Lifecycle) Install(d *Descriptor) (runner.Result, error) {
	return l.invoke(d, "install", true)
}

// Uninstall removes the descriptor's package. The descriptor is marked not
// installed after either outcome: removal succeeded, or it failed and the
// flag is pessimistic until the next probe.
func (l *Lifecycle) Uninstall(d *Descriptor) (runner.Result, error) {
	return l.invoke(d, "uninstall", false)
}

func (l *Lifecycle) invoke(d *Descriptor, subcommand string, stateOnSuccess bool) (runner.Result, error) {
	// One operation per descriptor at a time; overlapping installs of the
	// same package would interleave inside the package manager.
	d.mu.Lock()
	defer d.mu.Unlock()

	opID := uuid.NewString()

	argv := []string{l.binary, subcommand, d.Package}
	if l.userFlag != "" {
		argv = append(argv, l.userFlag)
	}

	log.Info().
		Str("event", subcommand+"_started").
		Str("op_id", opID).
		Str("plugin", d.Name).
		Str("package", d.Package).
		Msg("running package manager")

	res, err := l.run.Run(argv)
	if err != nil {
		log.Error().
			Err(err).
			Str("op_id", opID).
			Str("plugin", d.Name).
			Msg("failed to start package manager")

		return runner.Result{}, fmt.Errorf("%s %s: %w", subcommand, d.Package, err)
	}

	if res.ExitCode == 0 {
		d.installed = stateOnSuccess
	} else {
		d.installed = false
	}

	log.Info().
		Str("event", subcommand+"_finished").
		Str("op_id", opID).
		Str("plugin", d.Name).
		Int("exit_code", res.ExitCode).
		Bool("installed", d.installed).
		Msg("package manager finished")

	return res, nil
}
