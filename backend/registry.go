package backend

import (
	"slices"
	"sync"
)

// BackendFactory creates a new backend instance.
type BackendFactory func() RenderBackend

var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)

	// backendPriority is the selection order of Default. Backends that
	// need their own game loop are never picked implicitly.
	backendPriority = []string{BackendOpenGL, BackendSoftware}
)

// Register registers a backend factory under name, replacing any previous
// one. Backend packages call it from init.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered reports whether a backend called name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a new instance of the backend called name, or nil.
func Get(name string) RenderBackend {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the first registered backend in priority order, or nil.
func Default() RenderBackend {
	for _, name := range backendPriority {
		if b := Get(name); b != nil {
			return b
		}
	}
	return nil
}

// Open returns the backend called name, initialized. An empty name selects
// Default.
func Open(name string) (RenderBackend, error) {
	var b RenderBackend
	if name == "" {
		b = Default()
	} else {
		b = Get(name)
	}
	if b == nil {
		return nil, ErrBackendNotAvailable
	}
	if err := b.Init(); err != nil {
		return nil, err
	}
	return b, nil
}
