// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import "github.com/gogpu/tiles/internal/image"

// Option configures a Texture during creation.
//
// Example:
//
//	tex := texture.New(dev, texture.WithReadbackLimit(64<<20))
type Option func(*options)

type options struct {
	resampler     image.Resampler
	readbackLimit int
}

func defaultOptions() options {
	return options{
		resampler: image.BoxResampler{},
	}
}

// WithResampler sets the filter used for software mip levels.
// nil selects the box filter.
func WithResampler(r image.Resampler) Option {
	return func(o *options) {
		if r == nil {
			r = image.BoxResampler{}
		}
		o.resampler = r
	}
}

// WithReadbackLimit caps the size in bytes of a ReadPixels buffer. Larger
// readbacks fail with ErrAllocation. 0 means no limit.
func WithReadbackLimit(bytes int) Option {
	return func(o *options) {
		o.readbackLimit = bytes
	}
}

// ManagerOption configures a Manager.
type ManagerOption func(*managerOptions)

type managerOptions struct {
	mipmaps     bool
	textureOpts []Option
}

// WithMipmaps controls whether loaded textures get a mip chain.
// Defaults to true.
func WithMipmaps(enabled bool) ManagerOption {
	return func(o *managerOptions) {
		o.mipmaps = enabled
	}
}

// WithTextureOptions sets the options applied to every managed texture.
func WithTextureOptions(opts ...Option) ManagerOption {
	return func(o *managerOptions) {
		o.textureOpts = append(o.textureOpts, opts...)
	}
}
