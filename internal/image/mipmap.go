package image

import (
	"fmt"
	"math/bits"
)

// PrevPowerOfTwo returns the largest power of two strictly below n.
// Sizes of 1 or less stay 1, so an axis that reached 1 texel is kept there
// while the other axis keeps shrinking.
func PrevPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << (bits.Len(uint(n-1)) - 1)
}

// NextMipSize returns the dimensions of the mip level following a w×h level.
//
// Each axis is floored to a power of two independently instead of being
// halved: a 100×50 image continues with 64×32, not 50×25. Existing content
// was authored against this chain, so it must not be replaced by halving.
func NextMipSize(w, h int) (int, int) {
	return PrevPowerOfTwo(w), PrevPowerOfTwo(h)
}

// MipSizes lists the dimensions of every level below a w×h base image, in
// order, ending with 1×1. A 1×1 base has no further levels.
func MipSizes(w, h int) [][2]int {
	var sizes [][2]int
	for w > 1 || h > 1 {
		w, h = NextMipSize(w, h)
		sizes = append(sizes, [2]int{w, h})
	}
	return sizes
}

// WalkMipmaps computes the mip levels below src one at a time and hands each
// to fn together with its level number (starting at 1).
//
// Every level is resampled from the previous one. Once fn returns, the
// previous intermediate buffer is returned to the default pool; src itself
// is never released. fn must copy a level it wants to keep.
//
// The returned level is the last one fn accepted. On a resampling error or an
// error from fn, the walk stops and the error is returned alongside it.
func WalkMipmaps(src *ImageBuf, r Resampler, fn func(level int, img *ImageBuf) error) (int, error) {
	if src == nil || src.IsEmpty() {
		return 0, ErrInvalidDimensions
	}
	if r == nil {
		r = BoxResampler{}
	}

	cur := src
	release := func() {
		if cur != src {
			PutToDefault(cur)
		}
	}
	defer func() { release() }()

	level := 0
	w, h := src.Bounds()
	for w > 1 || h > 1 {
		nw, nh := NextMipSize(w, h)

		next, err := r.Resample(cur, nw, nh)
		if err != nil {
			return level, fmt.Errorf("image: mip level %d (%dx%d): %w", level+1, nw, nh, err)
		}
		if err := fn(level+1, next); err != nil {
			if next != src {
				PutToDefault(next)
			}
			return level, fmt.Errorf("image: mip level %d: %w", level+1, err)
		}
		level++

		release()
		cur = next
		w, h = nw, nh
	}

	return level, nil
}

// MipmapChain holds a fully materialised mip chain. Level 0 is the source
// image and is not copied.
type MipmapChain struct {
	levels []*ImageBuf
}

// GenerateMipmaps builds the complete chain for src using r (nil selects the
// box filter). Returns nil if src is nil or empty.
func GenerateMipmaps(src *ImageBuf, r Resampler) (*MipmapChain, error) {
	if src == nil || src.IsEmpty() {
		return nil, nil
	}

	chain := &MipmapChain{levels: []*ImageBuf{src}}
	_, err := WalkMipmaps(src, r, func(_ int, img *ImageBuf) error {
		chain.levels = append(chain.levels, img.Clone())
		return nil
	})
	if err != nil {
		return chain, err
	}
	return chain, nil
}

// Level returns the mipmap at the specified level.
// Level 0 is the original image. Returns nil if level is out of range.
func (m *MipmapChain) Level(n int) *ImageBuf {
	if m == nil || n < 0 || n >= len(m.levels) {
		return nil
	}
	return m.levels[n]
}

// NumLevels returns the total number of levels including level 0.
// Returns 0 if the chain is nil.
func (m *MipmapChain) NumLevels() int {
	if m == nil {
		return 0
	}
	return len(m.levels)
}

// Release drops every level except level 0, which belongs to the caller.
func (m *MipmapChain) Release() {
	if m == nil {
		return
	}
	for i := 1; i < len(m.levels); i++ {
		m.levels[i] = nil
	}
	m.levels = m.levels[:1]
}
