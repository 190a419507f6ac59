package backend

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/tiles/render"
)

func TestSoftwareBackendName(t *testing.T) {
	b := NewSoftwareBackend()
	if b.Name() != "software" {
		t.Errorf("Name() = %q, want %q", b.Name(), "software")
	}
}

func TestSoftwareBackendNewDevice(t *testing.T) {
	b := NewSoftwareBackend(render.WithHardwareMipmaps(false))
	if _, err := b.NewDevice(10, 10); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("NewDevice() before Init error = %v, want %v", err, ErrNotInitialized)
	}
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer b.Close()

	dev, err := b.NewDevice(64, 32)
	if err != nil {
		t.Fatalf("NewDevice() error = %v", err)
	}
	sd, ok := dev.(*render.SoftwareDevice)
	if !ok {
		t.Fatalf("NewDevice() = %T, want *render.SoftwareDevice", dev)
	}
	if tg := sd.Target(); tg == nil || tg.Width() != 64 || tg.Height() != 32 {
		t.Errorf("Target() = %v, want 64x32 framebuffer", tg)
	}
	if sd.CanGenerateMipmap() {
		t.Error("backend options were not applied to the device")
	}
	if len(b.Devices()) != 1 {
		t.Errorf("Devices() = %d, want 1", len(b.Devices()))
	}

	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 10},
		{"negative height", 10, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := b.NewDevice(tt.w, tt.h); !errors.Is(err, ErrInvalidSize) {
				t.Errorf("NewDevice(%d, %d) error = %v, want %v", tt.w, tt.h, err, ErrInvalidSize)
			}
		})
	}
}

func TestSoftwareBackendClose(t *testing.T) {
	b := NewSoftwareBackend()
	_ = b.Init()
	_, _ = b.NewDevice(4, 4)
	b.Close()
	if len(b.Devices()) != 0 {
		t.Error("Close() should forget devices")
	}
	if _, err := b.NewDevice(4, 4); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("NewDevice() after Close error = %v, want %v", err, ErrNotInitialized)
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	if !IsRegistered("software") {
		t.Error("software backend should be auto-registered")
	}

	b := Get("software")
	if b == nil {
		t.Fatal("Get(software) returned nil")
	}
	if b.Name() != "software" {
		t.Errorf("Get(software).Name() = %q, want %q", b.Name(), "software")
	}
	if Get("nonexistent") != nil {
		t.Error("Get(nonexistent) should return nil")
	}
}

func TestRegistryAvailable(t *testing.T) {
	available := Available()
	if !slices.Contains(available, "software") {
		t.Errorf("Available() = %v, should include software", available)
	}
	if !slices.IsSorted(available) {
		t.Errorf("Available() = %v, want sorted", available)
	}
}

func TestRegistryDefault(t *testing.T) {
	b := Default()
	if b == nil {
		t.Fatal("Default() returned nil")
	}
	// Only the software backend is linked into this test binary.
	if b.Name() != "software" {
		t.Errorf("Default() = %q, want software", b.Name())
	}
}

func TestRegistryOpen(t *testing.T) {
	b, err := Open("")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer b.Close()
	if _, err := b.NewDevice(8, 8); err != nil {
		t.Errorf("backend from Open() should be initialized: %v", err)
	}

	if _, err := Open("nonexistent"); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Open(nonexistent) error = %v, want %v", err, ErrBackendNotAvailable)
	}
}

func TestRegistryUnregister(t *testing.T) {
	Register("test-backend", func() RenderBackend {
		return NewSoftwareBackend()
	})
	if !IsRegistered("test-backend") {
		t.Error("test-backend should be registered")
	}

	Unregister("test-backend")
	if IsRegistered("test-backend") {
		t.Error("test-backend should be unregistered")
	}
}

func BenchmarkSoftwareBackendNewDevice(b *testing.B) {
	backend := NewSoftwareBackend()
	_ = backend.Init()
	defer backend.Close()

	for b.Loop() {
		_, _ = backend.NewDevice(64, 64)
	}
}
