package module

import (
	"fmt"
	"sort"
	"time"
)

// Factory constructs a module instance. Construction can fail (e.g. a
// malformed embedded doc), so instantiation is deferred until first use.
type Factory func() (Module, error)

// ErrUnknownModule is returned when a requested module has no registered
// factory.
var ErrUnknownModule = fmt.Errorf("unknown module")

// Registry maps module names to factories and caches instances for the
// duration of one run. It replaces the dynamic load-by-filename mechanism
// of earlier versions with a compile-time registration table. The registry
// is owned by the orchestrator and reset per invocation, never global.
type Registry struct {
	factories map[string]Factory
	loaded    map[string]Module
	loadTimes map[string]time.Duration
}

// NewRegistry returns a registry with the shipped modules registered.
func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
		loaded:    make(map[string]Module),
		loadTimes: make(map[string]time.Duration),
	}
	r.Register("serena", NewSerenaModule)
	r.Register("cipher", NewCipherModule)
	return r
}

// Register adds a factory under the given name. Later registrations win,
// which lets tests swap in fakes.
func (r *Registry) Register(name string, factory Factory) {
	r.factories[name] = factory
	delete(r.loaded, name)
	delete(r.loadTimes, name)
}

// Load returns the cached instance or instantiates it, recording the load
// latency on a cache miss.
func (r *Registry) Load(name string) (Module, error) {
	if mod, ok := r.loaded[name]; ok {
		return mod, nil
	}

	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModule, name)
	}

	start := time.Now()
	mod, err := factory()
	if err != nil {
		return nil, fmt.Errorf("failed to load module %s: %w", name, err)
	}
	r.loadTimes[name] = time.Since(start)

	r.loaded[name] = mod
	return mod, nil
}

// List loads every registered module and returns their metadata sorted by
// name. Modules that fail to load are skipped.
func (r *Registry) List() []Metadata {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)

	metas := make([]Metadata, 0, len(names))
	for _, name := range names {
		mod, err := r.Load(name)
		if err != nil {
			continue
		}
		metas = append(metas, mod.Metadata())
	}
	return metas
}

// LoadTime reports how long a module took to instantiate, if it was loaded
// this run.
func (r *Registry) LoadTime(name string) (time.Duration, bool) {
	d, ok := r.loadTimes[name]
	return d, ok
}

// Reset drops all cached instances and timings. Called at the start of each
// run so no state leaks between invocations.
func (r *Registry) Reset() {
	r.loaded = make(map[string]Module)
	r.loadTimes = make(map[string]time.Duration)
}
