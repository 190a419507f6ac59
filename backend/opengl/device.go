//go:build !nogl

package opengl

import (
	"unsafe"

	"github.com/go-gl/gl/v3.2-compatibility/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/tiles"
	"github.com/gogpu/tiles/internal/image"
	"github.com/gogpu/tiles/render"
)

const vertexSize = int32(unsafe.Sizeof(render.Vertex{}))

// glBuffer is the GL side of a render.VertexBuffer.
type glBuffer struct {
	id      uint32
	version uint64
	count   int
}

// texLevel0 remembers what level 0 of a texture was uploaded as, so reads
// can be expanded to RGBA8 the same way on every device.
type texLevel0 struct {
	format        render.Format
	width, height int
}

// Device is an OpenGL render.Device. All methods must be called on the
// thread owning the current GL context.
type Device struct {
	opts    options
	width   int
	height  int
	bound   render.TextureID
	buffers map[uint64]*glBuffer
	levels  map[render.TextureID]texLevel0
}

var (
	_ render.Device          = (*Device)(nil)
	_ render.MipmapGenerator = (*Device)(nil)
	_ render.AutoMipmapper   = (*Device)(nil)
)

// NewDevice creates a device for the current context and sets up a
// width×height viewport. gl.Init must have succeeded.
func NewDevice(width, height int, opts ...Option) (*Device, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d := &Device{
		opts:    o,
		buffers: make(map[uint64]*glBuffer),
		levels:  make(map[render.TextureID]texLevel0),
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	d.Viewport(width, height)
	return d, nil
}

// Viewport resizes the viewport and loads a pixel projection with y growing
// downwards. The model-view matrix is reset to identity.
func (d *Device) Viewport(width, height int) {
	d.width, d.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Ortho(0, float64(width), float64(height), 0, -1, 1)
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()
}

// LoadMatrix replaces the model-view matrix, typically with the camera.
func (d *Device) LoadMatrix(m mgl32.Mat4) {
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadMatrixf(&m[0])
}

// Clear fills the framebuffer with a colour.
func (d *Device) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Release deletes the buffer objects created by the device.
func (d *Device) Release() {
	for key, b := range d.buffers {
		gl.DeleteBuffers(1, &b.id)
		delete(d.buffers, key)
	}
}

// check logs a pending GL error for op.
func (d *Device) check(op string) bool {
	if code := gl.GetError(); code != gl.NO_ERROR {
		tiles.Logger().Warn("opengl: call failed", "op", op, "code", code)
		return false
	}
	return true
}

// GenTexture implements render.TextureDevice.
func (d *Device) GenTexture() render.TextureID {
	var id uint32
	gl.GenTextures(1, &id)
	return render.TextureID(id)
}

// DeleteTexture implements render.TextureDevice.
func (d *Device) DeleteTexture(id render.TextureID) {
	tex := uint32(id)
	gl.DeleteTextures(1, &tex)
	delete(d.levels, id)
	if d.bound == id {
		d.bound = 0
	}
}

// BindTexture implements render.TextureDevice. Binding 0 also disables
// texturing, so untextured draws use the vertex colour alone.
func (d *Device) BindTexture(id render.TextureID) {
	d.bound = id
	if id == 0 {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		gl.Disable(gl.TEXTURE_2D)
		return
	}
	gl.Enable(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, uint32(id))
}

// TexParameter implements render.TextureDevice.
func (d *Device) TexParameter(p render.TexParam, value int) {
	if name := glParam(p); name != 0 {
		gl.TexParameteri(gl.TEXTURE_2D, name, glParamValue(p, value))
	}
}

// TexImage2D implements render.TextureDevice.
func (d *Device) TexImage2D(level int, internal render.Format, width, height int, transfer render.Format, typ render.ComponentType, pixels []byte) {
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, int32(level), int32(glFormat(internal)),
		int32(width), int32(height), 0, glFormat(transfer), glType(typ), ptr)
	if level == 0 && d.check("TexImage2D") {
		d.levels[d.bound] = texLevel0{format: internal, width: width, height: height}
	}
}

// TexSubImage2D implements render.TextureDevice.
func (d *Device) TexSubImage2D(x, y, width, height int, pixels []byte) {
	if len(pixels) < width*height*4 || width <= 0 || height <= 0 {
		return
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, int32(x), int32(y), int32(width), int32(height),
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	d.check("TexSubImage2D")
}

// GetTexImage implements render.TextureDevice. Luminance textures are read
// in their own format and expanded, since GL would leave green and blue
// empty.
func (d *Device) GetTexImage(pixels []byte) {
	info, ok := d.levels[d.bound]
	if !ok || len(pixels) < info.width*info.height*4 || info.width*info.height == 0 {
		return
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)

	switch info.format {
	case render.FormatLuminance, render.FormatLuminanceAlpha:
		f, _ := image.FormatForChannels(info.format.Channels())
		raw := make([]byte, f.ImageBytes(info.width, info.height))
		gl.GetTexImage(gl.TEXTURE_2D, 0, glFormat(info.format), gl.UNSIGNED_BYTE, gl.Ptr(raw))
		buf, err := image.FromRaw(raw, info.width, info.height, f)
		if err != nil {
			tiles.Logger().Warn("opengl: readback", "err", err)
			return
		}
		buf.ReadRGBA8(0, 0, info.width, info.height, pixels)
	default:
		gl.GetTexImage(gl.TEXTURE_2D, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	}
	d.check("GetTexImage")
}

// CanGenerateMipmap implements render.MipmapGenerator.
func (d *Device) CanGenerateMipmap() bool {
	return d.opts.hardwareMipmaps
}

// GenerateMipmap implements render.MipmapGenerator.
func (d *Device) GenerateMipmap() bool {
	if !d.opts.hardwareMipmaps {
		return false
	}
	gl.GenerateMipmap(gl.TEXTURE_2D)
	return d.check("GenerateMipmap")
}

// RequestAutoMipmap implements render.AutoMipmapper.
func (d *Device) RequestAutoMipmap() bool {
	if !d.opts.legacyAuto {
		return false
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.GENERATE_MIPMAP, gl.TRUE)
	return d.check("GENERATE_MIPMAP")
}

// SetBlend implements render.Device.
func (d *Device) SetBlend(mode render.BlendMode) {
	src, dst := blendFactors(mode)
	gl.BlendFunc(src, dst)
}

// SetColor implements render.Device.
func (d *Device) SetColor(r, g, b, a float32) {
	gl.Color4f(r, g, b, a)
}

// PushMatrix implements render.Device.
func (d *Device) PushMatrix() { gl.PushMatrix() }

// PopMatrix implements render.Device.
func (d *Device) PopMatrix() { gl.PopMatrix() }

// Translate implements render.Device.
func (d *Device) Translate(x, y, z float32) { gl.Translatef(x, y, z) }

// Rotate implements render.Device.
func (d *Device) Rotate(angle, x, y, z float32) { gl.Rotatef(angle, x, y, z) }

// Scale implements render.Device.
func (d *Device) Scale(x, y, z float32) { gl.Scalef(x, y, z) }

// BindVertexBuffer implements render.Device. The buffer object is created
// on first use and refilled when vb's version moved on.
func (d *Device) BindVertexBuffer(vb *render.VertexBuffer) {
	b, ok := d.buffers[vb.ID()]
	if !ok {
		b = &glBuffer{}
		gl.GenBuffers(1, &b.id)
		d.buffers[vb.ID()] = b
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)

	if !ok || b.version != vb.Version() {
		verts := vb.Vertices()
		b.version = vb.Version()
		b.count = len(verts)
		if len(verts) > 0 {
			gl.BufferData(gl.ARRAY_BUFFER, len(verts)*int(vertexSize), gl.Ptr(&verts[0]), gl.STATIC_DRAW)
		}
	}

	gl.EnableClientState(gl.VERTEX_ARRAY)
	gl.EnableClientState(gl.TEXTURE_COORD_ARRAY)
	gl.VertexPointer(2, gl.FLOAT, vertexSize, gl.PtrOffset(0))
	gl.TexCoordPointer(2, gl.FLOAT, vertexSize, gl.PtrOffset(8))
}

// UnbindVertexBuffer implements render.Device.
func (d *Device) UnbindVertexBuffer() {
	gl.DisableClientState(gl.TEXTURE_COORD_ARRAY)
	gl.DisableClientState(gl.VERTEX_ARRAY)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// DrawArrays implements render.Device.
func (d *Device) DrawArrays(mode render.Primitive, first, count int) {
	gl.DrawArrays(glPrimitive(mode), int32(first), int32(count))
}

// SetPointSize implements render.Device.
func (d *Device) SetPointSize(size float32) { gl.PointSize(size) }

// SetLineWidth implements render.Device.
func (d *Device) SetLineWidth(width float32) { gl.LineWidth(width) }

// DrawImmediate implements render.Device.
func (d *Device) DrawImmediate(mode render.Primitive, points []mgl32.Vec2) {
	gl.Begin(glPrimitive(mode))
	for _, p := range points {
		gl.Vertex2f(p[0], p[1])
	}
	gl.End()
}
