//go:build !nogl

package main

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/tiles"
	"github.com/gogpu/tiles/backend"
	"github.com/gogpu/tiles/backend/opengl"
	"github.com/gogpu/tiles/internal/demo"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func runWindow(cfg config) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	win, err := glfw.CreateWindow(cfg.width, cfg.height, "tileview", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Destroy()
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	b, err := backend.Open(backend.BackendOpenGL)
	if err != nil {
		return err
	}
	defer b.Close()

	fbw, fbh := win.GetFramebufferSize()
	rd, err := b.NewDevice(fbw, fbh)
	if err != nil {
		return err
	}
	dev := rd.(*opengl.Device)

	s, err := demo.Build(dev, sceneOptions(cfg))
	if err != nil {
		return err
	}
	defer s.Close()
	configure(s, cfg)

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if width > 0 && height > 0 {
			dev.Viewport(width, height)
			cfg.width, cfg.height = width, height
		}
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyB:
			s.Renderer.SetRenderBorders(!s.Renderer.RenderBorders())
		case glfw.KeyC:
			s.Renderer.SetRenderCollisionShapes(!s.Renderer.RenderCollisionShapes())
		case glfw.KeyEqual:
			cfg.zoom *= 1.25
		case glfw.KeyMinus:
			cfg.zoom /= 1.25
		}
	})
	cfg.width, cfg.height = fbw, fbh

	var state tiles.PostRenderState
	last := glfw.GetTime()
	for frame := 0; !win.ShouldClose(); frame++ {
		if cfg.frames > 0 && frame >= cfg.frames {
			break
		}
		now := glfw.GetTime()
		s.Update(float32(now - last))
		last = now

		dev.Clear(0.08, 0.08, 0.1, 1)
		renderFrame(s, dev, cfg, &state)
		win.SwapBuffers()
		glfw.PollEvents()
	}
	tiles.Logger().Debug("tileview: closed", "texture", state.TextureID, "repeat", state.Repeat)
	return nil
}
