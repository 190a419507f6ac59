// Package opengl implements render.Device on fixed-function OpenGL.
//
// The device uses the compatibility profile: textures are classic 2D
// textures, transforms go through the model-view matrix stack and the
// debug overlay is drawn in immediate mode. Quads are uploaded once into
// buffer objects and re-uploaded only when their version changes.
//
// # Registration
//
// Importing the package registers the "opengl" backend:
//
//	import _ "github.com/gogpu/tiles/backend/opengl"
//
// The host creates the window and makes its GL context current before
// calling Init:
//
//	window.MakeContextCurrent()
//	b, err := backend.Open(backend.BackendOpenGL)
//
// # Build Tags
//
// Building with the "nogl" tag compiles a stub whose factory returns nil,
// so binaries without cgo can still import the package.
package opengl
