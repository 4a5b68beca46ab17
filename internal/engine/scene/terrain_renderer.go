package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-grass/internal/engine/scene/shaders"
	"github.com/Faultbox/midgard-grass/internal/engine/shader"
	"github.com/Faultbox/midgard-grass/internal/terrain"
	"github.com/Faultbox/midgard-grass/pkg/math"
)

// TerrainRenderer draws the ground mesh grass grows on.
type TerrainRenderer struct {
	// Shader
	program *shader.Program

	// Uniform locations
	locViewProj int32
	locModel    int32
	locColor    int32
	locLightDir int32
	locAmbient  int32

	// Mesh
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32

	// Color is the base ground color.
	Color [3]float32
}

// NewTerrainRenderer creates a new terrain renderer.
func NewTerrainRenderer() (*TerrainRenderer, error) {
	tr := &TerrainRenderer{
		Color: [3]float32{0.22, 0.16, 0.09},
	}

	program, err := shader.New(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	tr.program = program

	tr.locViewProj = program.Uniform("uViewProj")
	tr.locModel = program.Uniform("uModel")
	tr.locColor = program.Uniform("uColor")
	tr.locLightDir = program.Uniform("uLightDir")
	tr.locAmbient = program.Uniform("uAmbient")

	return tr, nil
}

// LoadMesh uploads m, replacing any previous mesh.
func (tr *TerrainRenderer) LoadMesh(m *terrain.Mesh) {
	tr.clearMesh()
	if m == nil || len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return
	}

	gl.GenVertexArrays(1, &tr.vao)
	gl.BindVertexArray(tr.vao)

	gl.GenBuffers(1, &tr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(unsafe.Sizeof(terrain.Vertex{})),
		unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &tr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	stride := int32(unsafe.Sizeof(terrain.Vertex{}))

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 12)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 24)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	tr.indexCount = int32(len(m.Indices))
}

// HasMesh reports whether a mesh is loaded.
func (tr *TerrainRenderer) HasMesh() bool {
	return tr.indexCount > 0
}

// Render draws the terrain.
func (tr *TerrainRenderer) Render(viewProj, model math.Mat4, lightDir, ambient [3]float32) {
	if tr.indexCount == 0 {
		return
	}

	tr.program.Use()
	gl.UniformMatrix4fv(tr.locViewProj, 1, false, &viewProj[0])
	gl.UniformMatrix4fv(tr.locModel, 1, false, &model[0])
	gl.Uniform3f(tr.locColor, tr.Color[0], tr.Color[1], tr.Color[2])
	gl.Uniform3f(tr.locLightDir, lightDir[0], lightDir[1], lightDir[2])
	gl.Uniform3f(tr.locAmbient, ambient[0], ambient[1], ambient[2])

	gl.BindVertexArray(tr.vao)
	gl.DrawElements(gl.TRIANGLES, tr.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (tr *TerrainRenderer) clearMesh() {
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
		tr.vao = 0
	}
	if tr.vbo != 0 {
		gl.DeleteBuffers(1, &tr.vbo)
		tr.vbo = 0
	}
	if tr.ebo != 0 {
		gl.DeleteBuffers(1, &tr.ebo)
		tr.ebo = 0
	}
	tr.indexCount = 0
}

// Destroy releases all GPU resources.
func (tr *TerrainRenderer) Destroy() {
	tr.clearMesh()
	if tr.program != nil {
		tr.program.Delete()
		tr.program = nil
	}
}
