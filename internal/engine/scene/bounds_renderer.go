package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-grass/internal/engine/scene/shaders"
	"github.com/Faultbox/midgard-grass/internal/engine/shader"
	"github.com/Faultbox/midgard-grass/pkg/math"
)

// BoundsRenderer draws line lists, used to outline chunks.
type BoundsRenderer struct {
	program     *shader.Program
	locViewProj int32
	locModel    int32
	locColor    int32

	vao      uint32
	vbo      uint32
	capacity int
	count    int32

	Color [4]float32
}

// NewBoundsRenderer creates a line renderer.
func NewBoundsRenderer() (*BoundsRenderer, error) {
	program, err := shader.New(shaders.BoundsVertexShader, shaders.BoundsFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("bounds shader: %w", err)
	}
	br := &BoundsRenderer{
		program: program,
		Color:   [4]float32{1, 0.85, 0.2, 1},
	}
	br.locViewProj = program.Uniform("uViewProj")
	br.locModel = program.Uniform("uModel")
	br.locColor = program.Uniform("uColor")

	gl.GenVertexArrays(1, &br.vao)
	gl.GenBuffers(1, &br.vbo)
	gl.BindVertexArray(br.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, br.vbo)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 12, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return br, nil
}

// SetLines replaces the line vertices, three floats per vertex.
func (br *BoundsRenderer) SetLines(verts []float32) {
	br.count = int32(len(verts) / 3)
	if len(verts) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, br.vbo)
	if len(verts) > br.capacity {
		br.capacity = len(verts)
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.DYNAMIC_DRAW)
		return
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, unsafe.Pointer(&verts[0]))
}

// Render draws the current lines.
func (br *BoundsRenderer) Render(viewProj, model math.Mat4) {
	if br.count == 0 {
		return
	}
	br.program.Use()
	gl.UniformMatrix4fv(br.locViewProj, 1, false, &viewProj[0])
	gl.UniformMatrix4fv(br.locModel, 1, false, &model[0])
	gl.Uniform4f(br.locColor, br.Color[0], br.Color[1], br.Color[2], br.Color[3])

	gl.BindVertexArray(br.vao)
	gl.DrawArrays(gl.LINES, 0, br.count)
	gl.BindVertexArray(0)
}

// Destroy releases all GPU resources.
func (br *BoundsRenderer) Destroy() {
	if br.vao != 0 {
		gl.DeleteVertexArrays(1, &br.vao)
		br.vao = 0
	}
	if br.vbo != 0 {
		gl.DeleteBuffers(1, &br.vbo)
		br.vbo = 0
	}
	if br.program != nil {
		br.program.Delete()
		br.program = nil
	}
}
