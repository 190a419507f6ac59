// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/go-gl/mathgl/mgl32"

// MatrixStack is a fixed-function style model-view stack. The top matrix is
// post-multiplied by every transform call, so the last call applies first
// to vertices.
type MatrixStack struct {
	stack []mgl32.Mat4
}

// NewMatrixStack creates a stack holding the identity.
func NewMatrixStack() *MatrixStack {
	return &MatrixStack{stack: []mgl32.Mat4{mgl32.Ident4()}}
}

// Top returns the current matrix.
func (s *MatrixStack) Top() mgl32.Mat4 {
	return s.stack[len(s.stack)-1]
}

// Load replaces the current matrix.
func (s *MatrixStack) Load(m mgl32.Mat4) {
	s.stack[len(s.stack)-1] = m
}

// Depth returns the number of matrices on the stack, at least 1.
func (s *MatrixStack) Depth() int {
	return len(s.stack)
}

// Push duplicates the current matrix.
func (s *MatrixStack) Push() {
	s.stack = append(s.stack, s.Top())
}

// Pop discards the current matrix. The bottom matrix is never popped.
func (s *MatrixStack) Pop() {
	if len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// Mul post-multiplies the current matrix by m.
func (s *MatrixStack) Mul(m mgl32.Mat4) {
	s.Load(s.Top().Mul4(m))
}

// Translate post-multiplies by a translation.
func (s *MatrixStack) Translate(x, y, z float32) {
	s.Mul(mgl32.Translate3D(x, y, z))
}

// Rotate post-multiplies by a rotation of angle degrees about (x, y, z).
// A zero axis leaves the matrix unchanged.
func (s *MatrixStack) Rotate(angle, x, y, z float32) {
	axis := mgl32.Vec3{x, y, z}
	if axis.Len() == 0 {
		return
	}
	s.Mul(mgl32.HomogRotate3D(mgl32.DegToRad(angle), axis.Normalize()))
}

// Scale post-multiplies by a scale.
func (s *MatrixStack) Scale(x, y, z float32) {
	s.Mul(mgl32.Scale3D(x, y, z))
}

// Apply transforms the 2D point p by the current matrix.
func (s *MatrixStack) Apply(p mgl32.Vec2) mgl32.Vec2 {
	return TransformPoint(s.Top(), p)
}

// TransformPoint transforms the 2D point p (z = 0, w = 1) by m.
func TransformPoint(m mgl32.Mat4, p mgl32.Vec2) mgl32.Vec2 {
	v := m.Mul4x1(mgl32.Vec4{p.X(), p.Y(), 0, 1})
	if w := v.W(); w != 0 && w != 1 {
		return mgl32.Vec2{v.X() / w, v.Y() / w}
	}
	return mgl32.Vec2{v.X(), v.Y()}
}
