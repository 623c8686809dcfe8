package plugins

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alc-ux/plugman/internal/probe"
)

// noneInstalled is a prober for an environment with no packages present.
var noneInstalled = probe.Func(func(string) bool { return false })

func writePluginList(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "plugin_list.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadAll_PreservesFileOrder(t *testing.T) {
	t.Parallel()

	path := writePluginList(t, `
zeta:
  package: zeta-pkg
  description: Zeta plugin
alpha:
  package: alpha-pkg
  description: Alpha plugin
mid:
  package: mid-pkg
  description: Mid plugin
`)

	descriptors := NewRegistry(noneInstalled).LoadAll(path)
	require.Len(t, descriptors, 3)

	names := []string{descriptors[0].Name, descriptors[1].Name, descriptors[2].Name}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
}

func TestLoadAll_ProbeTargetDerivation(t *testing.T) {
	t.Parallel()

	path := writePluginList(t, `
defaulted:
  package: some-long-pkg-name
  description: Uses the derived import name
explicit:
  package: other-pkg
  import: other_module
  description: Uses an explicit import name
`)

	descriptors := NewRegistry(noneInstalled).LoadAll(path)
	require.Len(t, descriptors, 2)

	assert.Equal(t, "some_long_pkg_name", descriptors[0].ProbeTarget)
	assert.Equal(t, "other_module", descriptors[1].ProbeTarget)
}

func TestLoadAll_SkipsEntriesMissingRequiredFields(t *testing.T) {
	t.Parallel()

	path := writePluginList(t, `
good:
  package: good-pkg
  description: A complete entry
no-package:
  description: Missing the package field
no-description:
  package: silent-pkg
also-good:
  package: also-good-pkg
  description: Another complete entry
`)

	descriptors := NewRegistry(noneInstalled).LoadAll(path)
	require.Len(t, descriptors, 2)
	assert.Equal(t, "good", descriptors[0].Name)
	assert.Equal(t, "also-good", descriptors[1].Name)
}

func TestLoadAll_SinglePluginScenario(t *testing.T) {
	t.Parallel()

	path := writePluginList(t, `
foo:
  package: foo-pkg
  description: Foo plugin
`)

	descriptors := NewRegistry(noneInstalled).LoadAll(path)
	require.Len(t, descriptors, 1)

	d := descriptors[0]
	assert.Equal(t, "foo", d.Name)
	assert.Equal(t, "foo-pkg", d.Package)
	assert.Equal(t, "foo_pkg", d.ProbeTarget)
	assert.Equal(t, "Foo plugin", d.Description)
	assert.False(t, d.Installed())
}

func TestLoadAll_MissingFileWarnsAndReturnsEmpty(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = orig }()

	path := filepath.Join(t.TempDir(), "does_not_exist.yml")
	descriptors := NewRegistry(noneInstalled).LoadAll(path)

	assert.Empty(t, descriptors)
	assert.Contains(t, buf.String(), path)
}

func TestLoadAll_MalformedFileWarnsAndReturnsEmpty(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = orig }()

	path := writePluginList(t, "{{ not valid yaml :::")
	descriptors := NewRegistry(noneInstalled).LoadAll(path)

	assert.Empty(t, descriptors)
	assert.Contains(t, buf.String(), "plugin list")
}

func TestLoadAll_NonMappingDocumentReturnsEmpty(t *testing.T) {
	t.Parallel()

	path := writePluginList(t, "- just\n- a\n- list\n")
	assert.Empty(t, NewRegistry(noneInstalled).LoadAll(path))
}

func TestLoadAll_ProbesInitialState(t *testing.T) {
	t.Parallel()

	path := writePluginList(t, `
present:
  package: present-pkg
  description: Already importable
absent:
  package: absent-pkg
  description: Not importable
`)

	prober := probe.Func(func(target string) bool { return target == "present_pkg" })
	descriptors := NewRegistry(prober).LoadAll(path)
	require.Len(t, descriptors, 2)

	assert.True(t, descriptors[0].Installed())
	assert.False(t, descriptors[1].Installed())
}

func TestRegistry_GetAndLen(t *testing.T) {
	t.Parallel()

	path := writePluginList(t, `
foo:
  package: foo-pkg
  description: Foo plugin
`)

	reg := NewRegistry(noneInstalled)
	reg.LoadAll(path)

	assert.Equal(t, 1, reg.Len())

	d, ok := reg.Get("foo")
	require.True(t, ok)
	assert.Equal(t, "foo-pkg", d.Package)

	_, ok = reg.Get("bar")
	assert.False(t, ok)
}

func TestRegistry_RefreshReprobes(t *testing.T) {
	t.Parallel()

	path := writePluginList(t, `
foo:
  package: foo-pkg
  description: Foo plugin
`)

	installed := false
	prober := probe.Func(func(string) bool { return installed })

	reg := NewRegistry(prober)
	reg.LoadAll(path)

	d, ok := reg.Get("foo")
	require.True(t, ok)
	assert.False(t, d.Installed())

	installed = true
	reg.Refresh()
	assert.True(t, d.Installed())
}

func TestRegistry_ReloadPicksUpChanges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "plugin_list.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
foo:
  package: foo-pkg
  description: Foo plugin
`), 0o644))

	reg := NewRegistry(noneInstalled)
	reg.LoadAll(path)
	assert.Equal(t, 1, reg.Len())

	require.NoError(t, os.WriteFile(path, []byte(`
foo:
  package: foo-pkg
  description: Foo plugin
bar:
  package: bar-pkg
  description: Bar plugin
`), 0o644))

	reg.Reload()
	assert.Equal(t, 2, reg.Len())
}
