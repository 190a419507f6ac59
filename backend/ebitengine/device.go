package ebitengine

import (
	stdimage "image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gogpu/tiles"
	"github.com/gogpu/tiles/internal/image"
	"github.com/gogpu/tiles/render"
)

type texture struct {
	img    *ebiten.Image
	pixels *image.ImageBuf // straight RGBA8 copy of level 0
	params map[render.TexParam]int
}

// Device is an Ebitengine render.Device.
type Device struct {
	nextID   render.TextureID
	textures map[render.TextureID]*texture
	bound    render.TextureID

	target    *ebiten.Image
	matrices  *render.MatrixStack
	blend     render.BlendMode
	color     mgl32.Vec4
	buffer    *render.VertexBuffer
	pointSize float32
	lineWidth float32

	white    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
	scratch  []byte
}

var (
	_ render.Device          = (*Device)(nil)
	_ render.MipmapGenerator = (*Device)(nil)
)

// NewDevice creates a device. target may be nil and set later.
func NewDevice(target *ebiten.Image) *Device {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Device{
		textures:  make(map[render.TextureID]*texture),
		target:    target,
		matrices:  render.NewMatrixStack(),
		color:     mgl32.Vec4{1, 1, 1, 1},
		pointSize: 1,
		lineWidth: 1,
		white:     white.SubImage(stdimage.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

// SetTarget selects the image subsequent draws go to.
func (d *Device) SetTarget(img *ebiten.Image) {
	d.target = img
}

// Target returns the current draw target.
func (d *Device) Target() *ebiten.Image {
	return d.target
}

// LoadMatrix replaces the current transform, typically with the camera.
func (d *Device) LoadMatrix(m mgl32.Mat4) {
	d.matrices.Load(m)
}

// Release deallocates every texture image.
func (d *Device) Release() {
	for id, t := range d.textures {
		if t.img != nil {
			t.img.Deallocate()
		}
		delete(d.textures, id)
	}
	d.bound = 0
}

func (d *Device) boundTexture() *texture {
	return d.textures[d.bound]
}

// GenTexture implements render.TextureDevice.
func (d *Device) GenTexture() render.TextureID {
	d.nextID++
	d.textures[d.nextID] = &texture{params: map[render.TexParam]int{
		render.TexWrapS:     render.WrapRepeat,
		render.TexWrapT:     render.WrapRepeat,
		render.TexMagFilter: render.FilterLinear,
	}}
	return d.nextID
}

// DeleteTexture implements render.TextureDevice.
func (d *Device) DeleteTexture(id render.TextureID) {
	t, ok := d.textures[id]
	if !ok {
		return
	}
	if t.img != nil {
		t.img.Deallocate()
	}
	delete(d.textures, id)
	if d.bound == id {
		d.bound = 0
	}
}

// BindTexture implements render.TextureDevice.
func (d *Device) BindTexture(id render.TextureID) {
	d.bound = id
}

// TexParameter implements render.TextureDevice.
func (d *Device) TexParameter(p render.TexParam, value int) {
	if t := d.boundTexture(); t != nil {
		t.params[p] = value
	}
}

// TexImage2D implements render.TextureDevice. Only level 0 is kept.
func (d *Device) TexImage2D(level int, _ render.Format, width, height int, transfer render.Format, _ render.ComponentType, pixels []byte) {
	t := d.boundTexture()
	if t == nil || level != 0 {
		return
	}
	f, ok := image.FormatForChannels(transfer.Channels())
	if !ok {
		return
	}
	src, err := image.FromRaw(pixels, width, height, f)
	if err != nil {
		tiles.Logger().Warn("ebitengine: texture upload", "w", width, "h", height, "err", err)
		return
	}
	rgba, err := image.FromRaw(src.ToRGBA8(), width, height, image.FormatRGBA8)
	if err != nil {
		return
	}
	t.pixels = rgba

	if t.img != nil && t.img.Bounds().Dx() == width && t.img.Bounds().Dy() == height {
		d.writePixels(t.img, rgba.Data())
		return
	}
	if t.img != nil {
		t.img.Deallocate()
		t.img = nil
	}
	if width > 0 && height > 0 {
		t.img = ebiten.NewImage(width, height)
		d.writePixels(t.img, rgba.Data())
	}
}

func (d *Device) writePixels(img *ebiten.Image, rgba []byte) {
	d.scratch = premultiply(d.scratch, rgba)
	img.WritePixels(d.scratch)
}

// TexSubImage2D implements render.TextureDevice.
func (d *Device) TexSubImage2D(x, y, width, height int, pixels []byte) {
	t := d.boundTexture()
	if t == nil || t.img == nil || width <= 0 || height <= 0 || len(pixels) < width*height*4 {
		return
	}
	t.pixels.WriteRGBA8(x, y, width, height, pixels)
	sub := t.img.SubImage(stdimage.Rect(x, y, x+width, y+height)).(*ebiten.Image)
	d.writePixels(sub, pixels[:width*height*4])
}

// GetTexImage implements render.TextureDevice. It reads the CPU copy, so it
// works outside the game loop.
func (d *Device) GetTexImage(pixels []byte) {
	t := d.boundTexture()
	if t == nil || t.pixels == nil {
		return
	}
	t.pixels.ReadRGBA8(0, 0, t.pixels.Width(), t.pixels.Height(), pixels)
}

// CanGenerateMipmap implements render.MipmapGenerator.
func (d *Device) CanGenerateMipmap() bool { return true }

// GenerateMipmap implements render.MipmapGenerator. Filtering is left to
// Ebitengine.
func (d *Device) GenerateMipmap() bool { return d.boundTexture() != nil }

// SetBlend implements render.Device.
func (d *Device) SetBlend(mode render.BlendMode) { d.blend = mode }

// SetColor implements render.Device.
func (d *Device) SetColor(r, g, b, a float32) { d.color = mgl32.Vec4{r, g, b, a} }

// PushMatrix implements render.Device.
func (d *Device) PushMatrix() { d.matrices.Push() }

// PopMatrix implements render.Device.
func (d *Device) PopMatrix() { d.matrices.Pop() }

// Translate implements render.Device.
func (d *Device) Translate(x, y, z float32) { d.matrices.Translate(x, y, z) }

// Rotate implements render.Device.
func (d *Device) Rotate(angle, x, y, z float32) { d.matrices.Rotate(angle, x, y, z) }

// Scale implements render.Device.
func (d *Device) Scale(x, y, z float32) { d.matrices.Scale(x, y, z) }

// BindVertexBuffer implements render.Device.
func (d *Device) BindVertexBuffer(vb *render.VertexBuffer) { d.buffer = vb }

// UnbindVertexBuffer implements render.Device.
func (d *Device) UnbindVertexBuffer() { d.buffer = nil }

// SetPointSize implements render.Device.
func (d *Device) SetPointSize(size float32) { d.pointSize = size }

// SetLineWidth implements render.Device.
func (d *Device) SetLineWidth(width float32) { d.lineWidth = width }

// DrawArrays implements render.Device. Only triangle fans are drawn.
func (d *Device) DrawArrays(mode render.Primitive, first, count int) {
	if d.target == nil || d.buffer == nil || mode != render.PrimTriangleFan {
		return
	}
	if first < 0 || count < 3 || first+count > d.buffer.Len() {
		return
	}
	verts := d.buffer.Vertices()[first : first+count]

	src := d.white
	opts := &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
		Blend:          ebitenBlend(d.blend),
	}
	var sw, sh float32
	if t := d.boundTexture(); t != nil && t.img != nil {
		src = t.img
		b := t.img.Bounds()
		sw, sh = float32(b.Dx()), float32(b.Dy())
		opts.Filter = ebitenFilter(t.params[render.TexMagFilter])
		opts.Address = ebitenAddress(t.params[render.TexWrapS])
	}

	d.vertices = d.vertices[:0]
	for _, v := range verts {
		p := d.matrices.Apply(mgl32.Vec2{v.X, v.Y})
		ev := d.vertex(p)
		if src != d.white {
			ev.SrcX, ev.SrcY = v.U*sw, v.V*sh
		}
		d.vertices = append(d.vertices, ev)
	}
	d.indices = fanIndices(d.indices, len(d.vertices))
	d.target.DrawTriangles(d.vertices, d.indices, src, opts)
}

// vertex returns an untextured vertex at p in the current colour.
func (d *Device) vertex(p mgl32.Vec2) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   p[0],
		DstY:   p[1],
		SrcX:   1,
		SrcY:   1,
		ColorR: d.color[0],
		ColorG: d.color[1],
		ColorB: d.color[2],
		ColorA: d.color[3],
	}
}

func (d *Device) nrgba() color.NRGBA {
	c := d.color
	return color.NRGBA{
		R: uint8(mgl32.Clamp(c[0], 0, 1) * 255),
		G: uint8(mgl32.Clamp(c[1], 0, 1) * 255),
		B: uint8(mgl32.Clamp(c[2], 0, 1) * 255),
		A: uint8(mgl32.Clamp(c[3], 0, 1) * 255),
	}
}

// DrawImmediate implements render.Device.
func (d *Device) DrawImmediate(mode render.Primitive, points []mgl32.Vec2) {
	if d.target == nil {
		return
	}
	clr := d.nrgba()
	switch mode {
	case render.PrimPoints:
		half := d.pointSize / 2
		for _, p := range points {
			q := d.matrices.Apply(p)
			vector.DrawFilledRect(d.target, q[0]-half, q[1]-half, d.pointSize, d.pointSize, clr, false)
		}
	case render.PrimLineStrip:
		for i := 1; i < len(points); i++ {
			a := d.matrices.Apply(points[i-1])
			b := d.matrices.Apply(points[i])
			vector.StrokeLine(d.target, a[0], a[1], b[0], b[1], d.lineWidth, clr, true)
		}
	case render.PrimTriangleFan:
		if len(points) < 3 {
			return
		}
		d.vertices = d.vertices[:0]
		for _, p := range points {
			d.vertices = append(d.vertices, d.vertex(d.matrices.Apply(p)))
		}
		d.indices = fanIndices(d.indices, len(d.vertices))
		d.target.DrawTriangles(d.vertices, d.indices, d.white, &ebiten.DrawTrianglesOptions{
			ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
			Blend:          ebitenBlend(d.blend),
		})
	}
}
