// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"maps"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/tiles/internal/image"
)

// ErrUnknownTexture is reported by SoftwareDevice.Err when a texture call
// targets no bound texture or a deleted handle.
var ErrUnknownTexture = errors.New("render: unknown texture")

// SoftwareOption configures a SoftwareDevice.
type SoftwareOption func(*softwareOptions)

type softwareOptions struct {
	hardwareMipmaps bool
	legacyAuto      bool
	width, height   int
}

// WithHardwareMipmaps controls whether the device reports a working
// GenerateMipmap. Defaults to true.
func WithHardwareMipmaps(enabled bool) SoftwareOption {
	return func(o *softwareOptions) {
		o.hardwareMipmaps = enabled
	}
}

// WithLegacyAutoMipmap controls whether RequestAutoMipmap is honoured.
// Defaults to false.
func WithLegacyAutoMipmap(enabled bool) SoftwareOption {
	return func(o *softwareOptions) {
		o.legacyAuto = enabled
	}
}

// WithFramebuffer attaches a width×height PixmapTarget that draw calls are
// rasterised into. Without a framebuffer draws are only recorded.
func WithFramebuffer(width, height int) SoftwareOption {
	return func(o *softwareOptions) {
		o.width = width
		o.height = height
	}
}

// Stats counts device calls. Every call is counted, including redundant
// ones, so callers can verify their own state elision.
type Stats struct {
	TextureBinds   int
	TextureUploads int
	ParamChanges   int
	BlendChanges   int
	ColorChanges   int
	BufferBinds    int
	DrawCalls      int
	ImmediateDraws int
	MipmapRequests int
}

// DrawRecord describes one draw call as the device saw it.
type DrawRecord struct {
	Mode      Primitive
	Texture   TextureID
	Blend     BlendMode
	Color     mgl32.Vec4
	Transform mgl32.Mat4
	Buffer    *VertexBuffer
	Count     int

	// Points holds the local coordinates of immediate draws.
	Points []mgl32.Vec2

	PointSize float32
	LineWidth float32
}

// TextureInfo is a snapshot of a texture's state.
type TextureInfo struct {
	Width, Height int
	Format        Format
	Levels        int
	Params        map[TexParam]int
	AutoMipmap    bool
}

type softTexture struct {
	format   Format
	levels   []*image.ImageBuf
	params   map[TexParam]int
	autoMip  bool
	mipDirty bool
}

// SoftwareDevice is a CPU implementation of Device. It stores real texel
// data, tracks the full binding state, records every draw and optionally
// rasterises into a PixmapTarget.
//
// Coordinates produced by the model-view matrix are framebuffer pixels with
// y growing downwards. Load a view matrix with LoadMatrix before drawing.
//
// Like a GL context it is not safe for concurrent use.
type SoftwareDevice struct {
	opts softwareOptions

	nextID   TextureID
	textures map[TextureID]*softTexture
	bound    TextureID

	blend     BlendMode
	color     mgl32.Vec4
	matrices  *MatrixStack
	buffer    *VertexBuffer
	pointSize float32
	lineWidth float32

	target *PixmapTarget
	stats  Stats
	draws  []DrawRecord
	err    error
}

// NewSoftwareDevice creates a software device.
func NewSoftwareDevice(opts ...SoftwareOption) *SoftwareDevice {
	o := softwareOptions{hardwareMipmaps: true}
	for _, opt := range opts {
		opt(&o)
	}

	d := &SoftwareDevice{
		opts:      o,
		textures:  make(map[TextureID]*softTexture),
		color:     mgl32.Vec4{1, 1, 1, 1},
		matrices:  NewMatrixStack(),
		pointSize: 1,
		lineWidth: 1,
	}
	if o.width > 0 && o.height > 0 {
		d.target = NewPixmapTarget(o.width, o.height)
	}
	return d
}

// Target returns the framebuffer, or nil if none was configured.
func (d *SoftwareDevice) Target() *PixmapTarget {
	return d.target
}

// Stats returns the call counters.
func (d *SoftwareDevice) Stats() Stats {
	return d.stats
}

// Draws returns the recorded draw calls since the last ResetStats.
func (d *SoftwareDevice) Draws() []DrawRecord {
	return d.draws
}

// ResetStats clears the counters and recorded draws. Binding state is kept.
func (d *SoftwareDevice) ResetStats() {
	d.stats = Stats{}
	d.draws = d.draws[:0]
}

// Err returns and clears the first error recorded since the last call.
func (d *SoftwareDevice) Err() error {
	err := d.err
	d.err = nil
	return err
}

func (d *SoftwareDevice) setErr(err error) {
	if d.err == nil {
		d.err = err
	}
}

// BoundTexture returns the currently bound texture.
func (d *SoftwareDevice) BoundTexture() TextureID {
	return d.bound
}

// BoundBuffer returns the currently bound vertex buffer, or nil.
func (d *SoftwareDevice) BoundBuffer() *VertexBuffer {
	return d.buffer
}

// Blend returns the current blend mode.
func (d *SoftwareDevice) Blend() BlendMode {
	return d.blend
}

// Color returns the current constant colour.
func (d *SoftwareDevice) Color() mgl32.Vec4 {
	return d.color
}

// MatrixDepth returns the depth of the model-view stack.
func (d *SoftwareDevice) MatrixDepth() int {
	return d.matrices.Depth()
}

// Transform returns the current model-view matrix.
func (d *SoftwareDevice) Transform() mgl32.Mat4 {
	return d.matrices.Top()
}

// LoadMatrix replaces the current model-view matrix, usually with the
// camera transform.
func (d *SoftwareDevice) LoadMatrix(m mgl32.Mat4) {
	d.matrices.Load(m)
}

// Texture returns a snapshot of the texture's state.
func (d *SoftwareDevice) Texture(id TextureID) (TextureInfo, bool) {
	t, ok := d.textures[id]
	if !ok {
		return TextureInfo{}, false
	}
	d.resolveMipmaps(t)

	info := TextureInfo{
		Format:     t.format,
		Levels:     len(t.levels),
		Params:     maps.Clone(t.params),
		AutoMipmap: t.autoMip,
	}
	if len(t.levels) > 0 && t.levels[0] != nil {
		info.Width, info.Height = t.levels[0].Bounds()
	}
	return info, true
}

// Level returns mip level n of the texture as tightly packed RGBA8.
func (d *SoftwareDevice) Level(id TextureID, n int) (pixels []byte, width, height int, ok bool) {
	t, found := d.textures[id]
	if !found {
		return nil, 0, 0, false
	}
	d.resolveMipmaps(t)
	if n < 0 || n >= len(t.levels) || t.levels[n] == nil {
		return nil, 0, 0, false
	}
	lvl := t.levels[n]
	return lvl.ToRGBA8(), lvl.Width(), lvl.Height(), true
}

// TextureCount returns the number of live textures.
func (d *SoftwareDevice) TextureCount() int {
	return len(d.textures)
}

// GenTexture implements TextureDevice.
func (d *SoftwareDevice) GenTexture() TextureID {
	d.nextID++
	d.textures[d.nextID] = &softTexture{
		params: map[TexParam]int{
			TexWrapS:     WrapRepeat,
			TexWrapT:     WrapRepeat,
			TexMinFilter: FilterLinearMipmapLinear,
			TexMagFilter: FilterLinear,
			TexMaxLevel:  1000,
		},
	}
	return d.nextID
}

// DeleteTexture implements TextureDevice.
func (d *SoftwareDevice) DeleteTexture(id TextureID) {
	if _, ok := d.textures[id]; !ok {
		d.setErr(fmt.Errorf("%w: delete %d", ErrUnknownTexture, id))
		return
	}
	delete(d.textures, id)
	if d.bound == id {
		d.bound = 0
	}
}

// BindTexture implements TextureDevice.
func (d *SoftwareDevice) BindTexture(id TextureID) {
	d.stats.TextureBinds++
	if id != 0 {
		if _, ok := d.textures[id]; !ok {
			d.setErr(fmt.Errorf("%w: bind %d", ErrUnknownTexture, id))
			return
		}
	}
	d.bound = id
}

func (d *SoftwareDevice) boundTexture(op string) *softTexture {
	t, ok := d.textures[d.bound]
	if !ok {
		d.setErr(fmt.Errorf("%w: %s without a bound texture", ErrUnknownTexture, op))
		return nil
	}
	return t
}

// TexParameter implements TextureDevice.
func (d *SoftwareDevice) TexParameter(p TexParam, value int) {
	t := d.boundTexture("TexParameter")
	if t == nil {
		return
	}
	d.stats.ParamChanges++
	t.params[p] = value
}

// TexImage2D implements TextureDevice. Pixels shorter than the level size
// allocate a zeroed level, like passing no data to the GPU.
func (d *SoftwareDevice) TexImage2D(level int, internal Format, width, height int, transfer Format, _ ComponentType, pixels []byte) {
	t := d.boundTexture("TexImage2D")
	if t == nil || level < 0 {
		return
	}
	dstFmt, ok := imageFormat(internal)
	if !ok {
		d.setErr(fmt.Errorf("render: TexImage2D: unsupported internal format %v", internal))
		return
	}
	buf, err := image.NewImageBuf(width, height, dstFmt)
	if err != nil {
		d.setErr(fmt.Errorf("render: TexImage2D: %w", err))
		return
	}
	if srcFmt, ok := imageFormat(transfer); ok {
		if src, err := image.FromRaw(pixels, width, height, srcFmt); err == nil {
			if srcFmt == dstFmt {
				copy(buf.Data(), src.Data())
			} else {
				buf.WriteRGBA8(0, 0, width, height, src.ToRGBA8())
			}
		}
	}

	d.stats.TextureUploads++
	for len(t.levels) <= level {
		t.levels = append(t.levels, nil)
	}
	t.levels[level] = buf
	if level == 0 {
		t.format = internal
		if t.autoMip {
			t.levels = t.levels[:1]
			t.mipDirty = true
		}
	}
}

// TexSubImage2D implements TextureDevice.
func (d *SoftwareDevice) TexSubImage2D(x, y, width, height int, pixels []byte) {
	t := d.boundTexture("TexSubImage2D")
	if t == nil || len(t.levels) == 0 || t.levels[0] == nil {
		return
	}
	t.levels[0].WriteRGBA8(x, y, width, height, pixels)
	if t.autoMip {
		t.levels = t.levels[:1]
		t.mipDirty = true
	}
}

// GetTexImage implements TextureDevice.
func (d *SoftwareDevice) GetTexImage(pixels []byte) {
	t := d.boundTexture("GetTexImage")
	if t == nil || len(t.levels) == 0 || t.levels[0] == nil {
		return
	}
	lvl := t.levels[0]
	lvl.ReadRGBA8(0, 0, lvl.Width(), lvl.Height(), pixels)
}

// CanGenerateMipmap implements MipmapGenerator.
func (d *SoftwareDevice) CanGenerateMipmap() bool {
	return d.opts.hardwareMipmaps
}

// GenerateMipmap implements MipmapGenerator.
func (d *SoftwareDevice) GenerateMipmap() bool {
	if !d.opts.hardwareMipmaps {
		return false
	}
	t := d.boundTexture("GenerateMipmap")
	if t == nil || len(t.levels) == 0 || t.levels[0] == nil {
		return false
	}
	d.stats.MipmapRequests++
	t.levels = t.levels[:1]
	t.mipDirty = true
	d.resolveMipmaps(t)
	return true
}

// RequestAutoMipmap implements AutoMipmapper.
func (d *SoftwareDevice) RequestAutoMipmap() bool {
	if !d.opts.legacyAuto {
		return false
	}
	t := d.boundTexture("RequestAutoMipmap")
	if t == nil {
		return false
	}
	d.stats.MipmapRequests++
	t.autoMip = true
	return true
}

// resolveMipmaps rebuilds pending device-generated levels.
func (d *SoftwareDevice) resolveMipmaps(t *softTexture) {
	if !t.mipDirty || len(t.levels) == 0 || t.levels[0] == nil {
		return
	}
	t.mipDirty = false
	chain, err := image.GenerateMipmaps(t.levels[0], nil)
	if err != nil {
		d.setErr(fmt.Errorf("render: generate mipmaps: %w", err))
	}
	t.levels = t.levels[:1]
	for i := 1; i < chain.NumLevels(); i++ {
		t.levels = append(t.levels, chain.Level(i))
	}
}

// SetBlend implements Device.
func (d *SoftwareDevice) SetBlend(mode BlendMode) {
	d.stats.BlendChanges++
	d.blend = mode
}

// SetColor implements Device.
func (d *SoftwareDevice) SetColor(r, g, b, a float32) {
	d.stats.ColorChanges++
	d.color = mgl32.Vec4{r, g, b, a}
}

// PushMatrix implements Device.
func (d *SoftwareDevice) PushMatrix() {
	d.matrices.Push()
}

// PopMatrix implements Device.
func (d *SoftwareDevice) PopMatrix() {
	d.matrices.Pop()
}

// Translate implements Device.
func (d *SoftwareDevice) Translate(x, y, z float32) {
	d.matrices.Translate(x, y, z)
}

// Rotate implements Device.
func (d *SoftwareDevice) Rotate(angle, x, y, z float32) {
	d.matrices.Rotate(angle, x, y, z)
}

// Scale implements Device.
func (d *SoftwareDevice) Scale(x, y, z float32) {
	d.matrices.Scale(x, y, z)
}

// BindVertexBuffer implements Device.
func (d *SoftwareDevice) BindVertexBuffer(vb *VertexBuffer) {
	d.stats.BufferBinds++
	d.buffer = vb
}

// UnbindVertexBuffer implements Device.
func (d *SoftwareDevice) UnbindVertexBuffer() {
	d.buffer = nil
}

// DrawArrays implements Device.
func (d *SoftwareDevice) DrawArrays(mode Primitive, first, count int) {
	d.stats.DrawCalls++
	d.draws = append(d.draws, d.record(mode, count))
	if d.buffer == nil || first < 0 || first+count > d.buffer.Len() {
		return
	}
	if d.target != nil && mode == PrimTriangleFan {
		d.rasterFan(d.buffer.Vertices()[first : first+count])
	}
}

// SetPointSize implements Device.
func (d *SoftwareDevice) SetPointSize(size float32) {
	d.pointSize = size
}

// SetLineWidth implements Device.
func (d *SoftwareDevice) SetLineWidth(width float32) {
	d.lineWidth = width
}

// DrawImmediate implements Device.
func (d *SoftwareDevice) DrawImmediate(mode Primitive, points []mgl32.Vec2) {
	d.stats.ImmediateDraws++
	rec := d.record(mode, len(points))
	rec.Points = append([]mgl32.Vec2(nil), points...)
	d.draws = append(d.draws, rec)

	if d.target == nil {
		return
	}
	switch mode {
	case PrimPoints:
		for _, p := range points {
			d.rasterPoint(d.matrices.Apply(p))
		}
	case PrimLineStrip:
		for i := 1; i < len(points); i++ {
			d.rasterLine(d.matrices.Apply(points[i-1]), d.matrices.Apply(points[i]))
		}
	case PrimTriangleFan:
		verts := make([]Vertex, len(points))
		for i, p := range points {
			verts[i] = Vertex{X: p.X(), Y: p.Y()}
		}
		d.rasterFanUntextured(verts)
	}
}

func (d *SoftwareDevice) record(mode Primitive, count int) DrawRecord {
	return DrawRecord{
		Mode:      mode,
		Texture:   d.bound,
		Blend:     d.blend,
		Color:     d.color,
		Transform: d.matrices.Top(),
		Buffer:    d.buffer,
		Count:     count,
		PointSize: d.pointSize,
		LineWidth: d.lineWidth,
	}
}

// imageFormat maps a device format to the matching pixel buffer format.
func imageFormat(f Format) (image.Format, bool) {
	switch f {
	case FormatLuminance:
		return image.FormatGray8, true
	case FormatLuminanceAlpha:
		return image.FormatGrayAlpha8, true
	case FormatRGB:
		return image.FormatRGB8, true
	case FormatRGBA:
		return image.FormatRGBA8, true
	default:
		return 0, false
	}
}

var (
	_ Device          = (*SoftwareDevice)(nil)
	_ MipmapGenerator = (*SoftwareDevice)(nil)
	_ AutoMipmapper   = (*SoftwareDevice)(nil)
)
