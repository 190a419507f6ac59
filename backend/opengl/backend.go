//go:build !nogl

package opengl

import (
	"fmt"
	"sync"

	"github.com/go-gl/gl/v3.2-compatibility/gl"

	"github.com/gogpu/tiles"
	"github.com/gogpu/tiles/backend"
	"github.com/gogpu/tiles/render"
)

func init() {
	backend.Register(backend.BackendOpenGL, func() backend.RenderBackend {
		return NewBackend()
	})
}

// Backend loads the GL entry points of the current context and creates
// devices for it.
type Backend struct {
	mu          sync.Mutex
	opts        []Option
	initialized bool
	version     string
	devices     []*Device
}

// NewBackend creates an OpenGL backend. opts apply to every device.
func NewBackend(opts ...Option) *Backend {
	return &Backend{opts: opts}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendOpenGL
}

// Init loads the GL functions. A context must be current.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		return nil
	}
	if err := gl.Init(); err != nil {
		return fmt.Errorf("opengl: init: %w", err)
	}
	b.version = gl.GoStr(gl.GetString(gl.VERSION))
	b.initialized = true
	tiles.Logger().Info("opengl: context ready",
		"version", b.version,
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return nil
}

// Version returns the GL version string, empty before Init.
func (b *Backend) Version() string {
	return b.version
}

// Close releases the buffer objects of every device.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, d := range b.devices {
		d.Release()
	}
	b.devices = nil
	b.initialized = false
}

// NewDevice creates a device with a width×height viewport.
func (b *Backend) NewDevice(width, height int) (render.Device, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	d, err := NewDevice(width, height, b.opts...)
	if err != nil {
		return nil, err
	}
	b.devices = append(b.devices, d)
	return d, nil
}
