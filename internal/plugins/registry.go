package plugins

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/alc-ux/plugman/internal/probe"
)

// Registry holds the ordered collection of configured plugin descriptors.
// The set of descriptors is fixed between loads; only each descriptor's
// install state changes in place.
type Registry struct {
	prober      probe.Prober
	descriptors []*Descriptor
	path        string
	mu          sync.RWMutex
}

// NewRegistry returns an empty registry probing with the given prober.
func NewRegistry(prober probe.Prober) *Registry {
	return &Registry{prober: prober}
}

// LoadAll reads the plugin list file at path and replaces the registry
// contents with the descriptors found there, in file order. A missing or
// malformed file degrades to an empty registry with a logged warning;
// LoadAll never fails. Entries missing required fields are skipped.
func (r *Registry) LoadAll(path string) []*Descriptor {
	descriptors := r.parseFile(path)

	r.mu.Lock()
	r.path = path
	r.descriptors = descriptors
	r.mu.Unlock()

	return descriptors
}

func (r *Registry) parseFile(path string) []*Descriptor {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().
			Err(err).
			Str("path", path).
			Msg("failed to load plugin list")

		return nil
	}

	// Decode through the node API so the file's entry order survives;
	// a plain map would shuffle it.
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		log.Warn().
			Err(err).
			Str("path", path).
			Msg("failed to parse plugin list")

		return nil
	}

	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		log.Warn().
			Str("path", path).
			Msg("plugin list is not a mapping of plugin entries")

		return nil
	}

	mapping := doc.Content[0]
	descriptors := make([]*Descriptor, 0, len(mapping.Content)/2)

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		name := mapping.Content[i].Value

		var raw rawDescriptor
		if err := mapping.Content[i+1].Decode(&raw); err != nil {
			log.Warn().
				Err(err).
				Str("plugin", name).
				Msg("skipping malformed plugin entry")

			continue
		}

		desc, err := newDescriptor(name, raw, r.prober)
		if err != nil {
			log.Warn().
				Err(err).
				Str("plugin", name).
				Msg("skipping invalid plugin entry")

			continue
		}

		descriptors = append(descriptors, desc)
		log.Debug().
			Str("event", "plugin_loaded").
			Str("plugin", desc.Name).
			Str("package", desc.Package).
			Bool("installed", desc.Installed()).
			Msg("loaded plugin definition")
	}

	return descriptors
}

// List returns the loaded descriptors in file order.
func (r *Registry) List() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Descriptor, len(r.descriptors))
	copy(out, r.descriptors)

	return out
}

// Get returns the descriptor with the given name.
func (r *Registry) Get(name string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.descriptors {
		if d.Name == name {
			return d, true
		}
	}

	return nil, false
}

// Len returns the number of loaded descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.descriptors)
}

// Refresh re-probes every descriptor's install state.
func (r *Registry) Refresh() {
	for _, d := range r.List() {
		d.Reprobe(r.prober)
	}
}

// Reload re-reads the plugin list from the path of the last LoadAll.
func (r *Registry) Reload() []*Descriptor {
	r.mu.RLock()
	path := r.path
	r.mu.RUnlock()

	if path == "" {
		return nil
	}

	return r.LoadAll(path)
}

// Watch reloads the registry whenever the plugin list file changes. It
// blocks until stop is closed; onReload, if non-nil, runs after each reload.
func (r *Registry) Watch(stop <-chan struct{}, onReload func()) error {
	r.mu.RLock()
	path := r.path
	r.mu.RUnlock()

	if path == "" {
		return fmt.Errorf("registry has no plugin list path; call LoadAll first")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors replace the file, which would drop a
	// watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	for {
		select {
		case <-stop:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			r.Reload()
			log.Info().
				Str("event", "registry_reloaded").
				Str("path", path).
				Int("plugins", r.Len()).
				Msg("plugin list reloaded")
			if onReload != nil {
				onReload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("plugin list watcher error")
		}
	}
}
