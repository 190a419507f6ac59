package ebitengine

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/tiles/backend"
	"github.com/gogpu/tiles/render"
)

func init() {
	backend.Register(backend.BackendEbitengine, func() backend.RenderBackend {
		return &Backend{}
	})
}

// Backend creates Ebitengine devices drawing into offscreen images. Inside
// a game, point a device at the screen with Device.SetTarget instead.
type Backend struct {
	initialized bool
	devices     []*Device
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendEbitengine
}

// Init initializes the backend.
func (b *Backend) Init() error {
	b.initialized = true
	return nil
}

// Close releases the textures and targets of every device.
func (b *Backend) Close() {
	for _, d := range b.devices {
		if t := d.Target(); t != nil {
			t.Deallocate()
		}
		d.Release()
	}
	b.devices = nil
	b.initialized = false
}

// NewDevice creates a device drawing into a new width×height image.
func (b *Backend) NewDevice(width, height int) (render.Device, error) {
	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	if width <= 0 || height <= 0 {
		return nil, backend.ErrInvalidSize
	}
	d := NewDevice(ebiten.NewImage(width, height))
	b.devices = append(b.devices, d)
	return d, nil
}
