// Package backend provides a pluggable source of render devices.
//
// Backends register themselves from init functions and are selected at
// runtime by name. The software backend is registered on import:
//
//	import _ "github.com/gogpu/tiles/backend"
//
// GPU backends register when their package is imported:
//
//	import _ "github.com/gogpu/tiles/backend/opengl"
//
// # Backend Selection
//
// Open initializes a backend by name, or the best available one:
//
//	b, err := backend.Open("")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	dev, err := b.NewDevice(800, 600)
//
// # Available Backends
//
//   - "software": CPU reference device rendering into an image (always available)
//   - "opengl": fixed-function OpenGL through go-gl; needs a current context
//   - "ebitengine": Ebitengine images; draws inside an ebiten.Game
package backend
