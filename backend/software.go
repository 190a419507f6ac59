package backend

import (
	"fmt"
	"slices"

	"github.com/gogpu/tiles/render"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU reference backend.
	BackendSoftware = "software"
	// BackendOpenGL is the name of the fixed-function OpenGL backend.
	BackendOpenGL = "opengl"
	// BackendEbitengine is the name of the Ebitengine backend.
	BackendEbitengine = "ebitengine"
)

// SoftwareBackend hands out render.SoftwareDevice instances rasterising
// into an in-memory framebuffer.
type SoftwareBackend struct {
	initialized bool
	opts        []render.SoftwareOption
	devices     []*render.SoftwareDevice
}

func init() {
	Register(BackendSoftware, func() RenderBackend {
		return NewSoftwareBackend()
	})
}

// NewSoftwareBackend creates a software backend. opts apply to every device
// it creates, before the framebuffer option.
func NewSoftwareBackend(opts ...render.SoftwareOption) *SoftwareBackend {
	return &SoftwareBackend{opts: opts}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return BackendSoftware
}

// Init initializes the backend.
func (b *SoftwareBackend) Init() error {
	b.initialized = true
	return nil
}

// Close forgets all devices created so far.
func (b *SoftwareBackend) Close() {
	b.devices = nil
	b.initialized = false
}

// NewDevice creates a software device with a width×height framebuffer. The
// model-view transform starts as identity, so device coordinates are
// framebuffer pixels.
func (b *SoftwareBackend) NewDevice(width, height int) (render.Device, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("backend: software device %dx%d: %w", width, height, ErrInvalidSize)
	}
	opts := append(slices.Clone(b.opts), render.WithFramebuffer(width, height))
	d := render.NewSoftwareDevice(opts...)
	b.devices = append(b.devices, d)
	return d, nil
}

// Devices returns the devices created since Init.
func (b *SoftwareBackend) Devices() []*render.SoftwareDevice {
	return b.devices
}
