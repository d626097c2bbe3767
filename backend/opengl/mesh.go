package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

const sizeofFloat32 = 4

// Mesh is an indexed triangle mesh of interleaved float32 attributes.
type Mesh struct {
	vao, vbo uint32
	ebo      uint32
	count    int32
}

// NewMesh uploads vertices and indices. layout gives the component count
// of each attribute in order; attribute i is bound to location i.
//
//	// position (3) + texcoord (2)
//	quad := opengl.NewMesh(vertices, []uint32{0, 1, 2, 0, 2, 3}, 3, 2)
func NewMesh(vertices []float32, indices []uint32, layout ...int) *Mesh {
	m := &Mesh{count: int32(len(indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*sizeofFloat32, gl.Ptr(vertices), gl.STATIC_DRAW)
	}

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}

	stride, offsets := attribLayout(layout)
	for i, size := range layout {
		gl.VertexAttribPointerWithOffset(uint32(i), int32(size), gl.FLOAT, false, stride, offsets[i])
		gl.EnableVertexAttribArray(uint32(i))
	}

	gl.BindVertexArray(0)
	return m
}

// Draw issues the indexed draw call. The caller selects the program first.
func (m *Mesh) Draw() {
	if m.count == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Delete releases OpenGL resources.
func (m *Mesh) Delete() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
}

// attribLayout returns the byte stride of one vertex and the byte offset
// of each attribute.
func attribLayout(layout []int) (stride int32, offsets []uintptr) {
	offsets = make([]uintptr, len(layout))
	var total int
	for i, size := range layout {
		offsets[i] = uintptr(total * sizeofFloat32)
		total += size
	}
	return int32(total * sizeofFloat32), offsets
}
