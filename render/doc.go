// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the GPU binding abstraction the tile renderer and
// texture manager draw through.
//
// # Key Principle
//
// The tiles packages RECEIVE a device from the host application, they do NOT
// create one. The host owns the GPU context, the camera and projection
// matrices, and the frame loop; the renderer only binds state, pushes
// transforms on top of the host's and issues draws.
//
// # Core Interfaces
//
//   - TextureDevice: texture allocation, parameters, level upload, readback
//   - Device: TextureDevice plus blend, colour, matrix stack and draw calls
//   - MipmapGenerator: optional device-side mipmap generation
//   - AutoMipmapper: optional legacy automatic mipmap parameter
//
// # Implementations
//
//   - SoftwareDevice: CPU reference device with real texel storage, call
//     counters and an optional rasteriser into a PixmapTarget
//   - backend/opengl: OpenGL compatibility profile
//   - backend/ebitengine: Ebitengine
//
// # Usage
//
// Headless rendering:
//
//	dev := render.NewSoftwareDevice(render.WithFramebuffer(800, 600))
//	dev.LoadMatrix(camera)
//	renderer.OnRender(rc) // rc.Device = dev
//	dev.Target().SavePNG("frame.png")
//
// # Architecture
//
//	              Host application
//	                     │
//	       ┌─────────────┼─────────────┐
//	       ▼             ▼             ▼
//	 tiles.Renderer  texture.Manager  tileset.Tileset
//	       │             │             │
//	       └─────────────┼─────────────┘
//	                     ▼
//	               render.Device
//	       ┌─────────────┼─────────────┐
//	       ▼             ▼             ▼
//	  SoftwareDevice   OpenGL      Ebitengine
//
// # Thread Safety
//
// Devices are NOT thread-safe. All calls must come from the goroutine that
// owns the GPU context.
package render
