package backend

import (
	"errors"

	"github.com/gogpu/tiles/render"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrInvalidSize is returned for a framebuffer without area.
	ErrInvalidSize = errors.New("backend: invalid framebuffer size")
)

// RenderBackend is a source of render.Device implementations. Backends
// register themselves via Register and are selected with Get or Default.
type RenderBackend interface {
	// Name returns the backend identifier (e.g., "software", "opengl").
	Name() string

	// Init prepares the backend. Window-bound backends expect the host's
	// graphics context to be current.
	Init() error

	// Close releases all backend resources. Devices created by the backend
	// must not be used afterwards.
	Close()

	// NewDevice creates a device drawing into a width×height framebuffer.
	NewDevice(width, height int) (render.Device, error)
}
