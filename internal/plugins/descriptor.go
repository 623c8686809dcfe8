// Package plugins loads plugin definitions and manages their lifecycle.
package plugins

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alc-ux/plugman/internal/probe"
)

// ErrMissingField signals a plugin entry lacking a required field.
var ErrMissingField = errors.New("missing required field")

// rawDescriptor is the on-disk shape of one plugin entry.
type rawDescriptor struct {
	Package     string `yaml:"package"`
	Import      string `yaml:"import"`
	Description string `yaml:"description"`
}

// Descriptor defines one managed plugin. Name, Package, ProbeTarget and
// Description are fixed at construction; Installed is a point-in-time
// observation, updated by lifecycle operations or an explicit re-probe.
type Descriptor struct {
	Name        string
	Package     string
	ProbeTarget string
	Description string

	installed bool
	mu        sync.Mutex
}

// newDescriptor validates raw fields, derives the probe target and probes
// the initial install state.
func newDescriptor(name string, raw rawDescriptor, prober probe.Prober) (*Descriptor, error) {
	if raw.Package == "" {
		return nil, fmt.Errorf("plugin %q: %w: package", name, ErrMissingField)
	}
	if raw.Description == "" {
		return nil, fmt.Errorf("plugin %q: %w: description", name, ErrMissingField)
	}

	target := raw.Import
	if target == "" {
		target = strings.ReplaceAll(raw.Package, "-", "_")
	}

	return &Descriptor{
		Name:        name,
		Package:     raw.Package,
		ProbeTarget: target,
		Description: raw.Description,
		installed:   prober.Probe(target),
	}, nil
}

// Installed reports the last observed install state.
func (d *Descriptor) Installed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.installed
}

// Reprobe refreshes the install state from a fresh probe and returns it.
func (d *Descriptor) Reprobe(prober probe.Prober) bool {
	state := prober.Probe(d.ProbeTarget)

	d.mu.Lock()
	d.installed = state
	d.mu.Unlock()

	return state
}
