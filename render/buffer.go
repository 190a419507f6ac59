// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"sync"
	"sync/atomic"
)

// Vertex is a 2D position with texture coordinates.
type Vertex struct {
	X, Y float32
	U, V float32
}

var bufferIDs atomic.Uint64

// VertexBuffer is a small immutable-by-convention vertex array. Quads are
// unit sized and centred on the origin, so scaling by (w, h) yields a w×h
// rectangle around the tile position.
//
// Backends that upload vertex data key their cache on ID and Version.
type VertexBuffer struct {
	id       uint64
	version  uint64
	vertices []Vertex
}

// NewVertexBuffer creates a buffer holding a copy of vertices.
func NewVertexBuffer(vertices []Vertex) *VertexBuffer {
	vb := &VertexBuffer{id: bufferIDs.Add(1)}
	vb.Set(vertices)
	return vb
}

// NewQuad creates a unit quad mapping the texture rectangle
// (u1, v1)-(u2, v2). The vertices are ordered for a triangle fan.
func NewQuad(u1, v1, u2, v2 float32) *VertexBuffer {
	vb := &VertexBuffer{id: bufferIDs.Add(1)}
	vb.SetQuad(u1, v1, u2, v2)
	return vb
}

// SetQuad replaces the contents with a unit quad mapping (u1, v1)-(u2, v2).
// v1 maps to the top edge.
func (vb *VertexBuffer) SetQuad(u1, v1, u2, v2 float32) {
	vb.Set([]Vertex{
		{X: -0.5, Y: -0.5, U: u1, V: v1},
		{X: 0.5, Y: -0.5, U: u2, V: v1},
		{X: 0.5, Y: 0.5, U: u2, V: v2},
		{X: -0.5, Y: 0.5, U: u1, V: v2},
	})
}

// Set replaces the buffer contents and bumps its version.
func (vb *VertexBuffer) Set(vertices []Vertex) {
	vb.vertices = append(vb.vertices[:0], vertices...)
	vb.version++
}

// ID returns a process-unique identifier for the buffer.
func (vb *VertexBuffer) ID() uint64 {
	return vb.id
}

// Version increases every time the contents change.
func (vb *VertexBuffer) Version() uint64 {
	return vb.version
}

// Vertices returns the buffer contents. The slice must not be modified.
func (vb *VertexBuffer) Vertices() []Vertex {
	return vb.vertices
}

// Len returns the number of vertices.
func (vb *VertexBuffer) Len() int {
	return len(vb.vertices)
}

var (
	defaultQuadOnce sync.Once
	defaultQuad     *VertexBuffer
)

// DefaultQuad returns the shared quad mapping the whole texture
// (0, 0)-(1, 1). It must not be modified.
func DefaultQuad() *VertexBuffer {
	defaultQuadOnce.Do(func() {
		defaultQuad = NewQuad(0, 0, 1, 1)
	})
	return defaultQuad
}
