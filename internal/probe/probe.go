// Package probe answers whether a plugin's backing package is importable
// in the managed Python environment.
package probe

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/alc-ux/plugman/internal/runner"
)

// Prober reports whether the named module resolves in the environment.
type Prober interface {
	Probe(target string) bool
}

// Func adapts a function to the Prober interface.
type Func func(target string) bool

// Probe calls f.
func (f Func) Probe(target string) bool {
	return f(target)
}

// InterpreterProber asks a Python interpreter to import the target module.
// An import failure of any kind counts as "not installed"; a present but
// broken package is indistinguishable from an absent one.
type InterpreterProber struct {
	interpreter string
	run         runner.Runner
}

// NewInterpreterProber returns a prober using the given interpreter binary.
func NewInterpreterProber(interpreter string, run runner.Runner) InterpreterProber {
	return InterpreterProber{interpreter: interpreter, run: run}
}

// Probe returns true if the interpreter can import target. The check has no
// side effects and is safe to repeat.
func (p InterpreterProber) Probe(target string) bool {
	if target == "" {
		return false
	}

	res, err := p.run.Run([]string{
		p.interpreter,
		"-c",
		fmt.Sprintf("import importlib; importlib.import_module(%q)", target),
	})
	if err != nil {
		log.Warn().
			Err(err).
			Str("interpreter", p.interpreter).
			Str("target", target).
			Msg("failed to run import probe")

		return false
	}

	return res.ExitCode == 0
}
