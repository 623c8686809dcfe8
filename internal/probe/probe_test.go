package probe

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alc-ux/plugman/internal/runner"
)

func TestInterpreterProber_ExitCodeMapsToBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		exitCode int
		want     bool
	}{
		{name: "import succeeds", exitCode: 0, want: true},
		{name: "import fails", exitCode: 1, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			run := runner.Func(func(_ []string) (runner.Result, error) {
				return runner.Result{ExitCode: tc.exitCode}, nil
			})

			p := NewInterpreterProber("python3", run)
			assert.Equal(t, tc.want, p.Probe("aiida_chemshell"))
		})
	}
}

func TestInterpreterProber_PassesTargetToInterpreter(t *testing.T) {
	t.Parallel()

	var argv []string
	run := runner.Func(func(a []string) (runner.Result, error) {
		argv = a
		return runner.Result{ExitCode: 0}, nil
	})

	NewInterpreterProber("python3", run).Probe("foo_pkg")

	assert.Equal(t, "python3", argv[0])
	assert.True(t, strings.Contains(argv[len(argv)-1], `"foo_pkg"`))
}

func TestInterpreterProber_RunnerErrorMeansNotInstalled(t *testing.T) {
	t.Parallel()

	run := runner.Func(func(_ []string) (runner.Result, error) {
		return runner.Result{}, errors.New("no interpreter")
	})

	assert.False(t, NewInterpreterProber("python3", run).Probe("foo"))
}

func TestInterpreterProber_EmptyTarget(t *testing.T) {
	t.Parallel()

	run := runner.Func(func(_ []string) (runner.Result, error) {
		t.Fatal("runner should not be invoked for an empty target")
		return runner.Result{}, nil
	})

	assert.False(t, NewInterpreterProber("python3", run).Probe(""))
}

func TestInterpreterProber_Idempotent(t *testing.T) {
	t.Parallel()

	run := runner.Func(func(_ []string) (runner.Result, error) {
		return runner.Result{ExitCode: 0}, nil
	})
	p := NewInterpreterProber("python3", run)

	first := p.Probe("foo")
	second := p.Probe("foo")
	assert.Equal(t, first, second)
}
