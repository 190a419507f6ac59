// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/gogpu/tiles/internal/image"
	"github.com/gogpu/tiles/render"
)

// imageExts are tried in order when a name has no extension.
var imageExts = []string{".png", ".jpg", ".webp", ".bmp", ".tif"}

// Handle is a shared, reference-counted texture. Every Acquire must be
// matched by one Release; the texture is unloaded with the last one.
type Handle struct {
	mgr  *Manager
	name string
	tex  *Texture
	refs int
}

// Texture returns the underlying texture.
func (h *Handle) Texture() *Texture {
	if h == nil {
		return nil
	}
	return h.tex
}

// Name returns the name the texture was acquired under.
func (h *Handle) Name() string { return h.name }

// Refs returns the current reference count.
func (h *Handle) Refs() int { return h.refs }

// Release drops one reference. Releasing a handle with no references left
// does nothing.
func (h *Handle) Release() {
	if h == nil || h.refs == 0 {
		return
	}
	h.refs--
	if h.refs > 0 {
		return
	}
	h.tex.Unload()
	if h.mgr != nil && h.mgr.entries[h.name] == h {
		delete(h.mgr.entries, h.name)
	}
	slogger().Info("texture: released", "name", h.name)
}

// Manager shares textures by name so that every tile kind using the same
// image references one device texture.
type Manager struct {
	dev     render.TextureDevice
	fsys    fs.FS
	opts    managerOptions
	entries map[string]*Handle
}

// NewManager creates a manager loading images from fsys onto dev.
// fsys may be nil if all textures are added with Add.
func NewManager(dev render.TextureDevice, fsys fs.FS, opts ...ManagerOption) *Manager {
	o := managerOptions{mipmaps: true}
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager{
		dev:     dev,
		fsys:    fsys,
		opts:    o,
		entries: make(map[string]*Handle),
	}
}

// Acquire returns the texture called name, loading it on first use.
// Names without an extension are looked up with each supported extension.
func (m *Manager) Acquire(name string) (*Handle, error) {
	if h, ok := m.entries[name]; ok {
		h.refs++
		return h, nil
	}
	if m.fsys == nil {
		return nil, fmt.Errorf("texture: acquire %q: %w", name, fs.ErrNotExist)
	}

	buf, err := m.load(name)
	if err != nil {
		return nil, err
	}
	return m.add(name, imageDataFromBuf(buf))
}

// Add uploads img under name and returns a handle to it. If name is already
// managed, the existing texture is re-uploaded and shared.
func (m *Manager) Add(name string, img *ImageData) (*Handle, error) {
	if h, ok := m.entries[name]; ok {
		if err := h.tex.Upload(img, m.opts.mipmaps); err != nil {
			return nil, fmt.Errorf("texture: add %q: %w", name, err)
		}
		h.refs++
		return h, nil
	}
	return m.add(name, img)
}

func (m *Manager) add(name string, img *ImageData) (*Handle, error) {
	tex := New(m.dev, m.opts.textureOpts...)
	if err := tex.Upload(img, m.opts.mipmaps); err != nil {
		return nil, fmt.Errorf("texture: add %q: %w", name, err)
	}
	h := &Handle{mgr: m, name: name, tex: tex, refs: 1}
	m.entries[name] = h
	slogger().Info("texture: loaded", "name", name, "w", tex.Width(), "h", tex.Height())
	return h, nil
}

func (m *Manager) load(name string) (*image.ImageBuf, error) {
	if path.Ext(name) != "" {
		return image.LoadFS(m.fsys, name)
	}
	var errs []error
	for _, ext := range imageExts {
		buf, err := image.LoadFS(m.fsys, name+ext)
		if err == nil {
			return buf, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		errs = append(errs, err)
	}
	return nil, fmt.Errorf("texture: acquire %q: %w", name, errors.Join(errs...))
}

// Lookup returns the managed texture called name without adding a reference.
func (m *Manager) Lookup(name string) (*Handle, bool) {
	h, ok := m.entries[name]
	return h, ok
}

// Len returns the number of managed textures.
func (m *Manager) Len() int {
	return len(m.entries)
}

// Names returns the managed texture names in sorted order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close unloads every managed texture regardless of outstanding references.
func (m *Manager) Close() {
	for name, h := range m.entries {
		h.tex.Unload()
		h.refs = 0
		delete(m.entries, name)
	}
}

// imageDataFromBuf wraps a decoded buffer without copying.
func imageDataFromBuf(buf *image.ImageBuf) *ImageData {
	return &ImageData{
		Pixels:   buf.Data(),
		Width:    buf.Width(),
		Height:   buf.Height(),
		Channels: buf.Format().Channels(),
	}
}
