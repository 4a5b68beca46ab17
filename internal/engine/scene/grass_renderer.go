package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-grass/internal/engine/scene/shaders"
	"github.com/Faultbox/midgard-grass/internal/engine/shader"
	"github.com/Faultbox/midgard-grass/internal/grass"
	"github.com/Faultbox/midgard-grass/pkg/math"
)

// GrassParamsBinding is the uniform buffer binding point of the GrassParams block.
const GrassParamsBinding = 0

// Per-instance attribute layout, mirroring grass.Instance.
const (
	instanceStride   = int32(unsafe.Sizeof(grass.Instance{}))
	offsetPosition   = unsafe.Offsetof(grass.Instance{}.Position)
	offsetNormal     = unsafe.Offsetof(grass.Instance{}.Normal)
	offsetUV         = unsafe.Offsetof(grass.Instance{}.UV)
	offsetChunkCoord = unsafe.Offsetof(grass.Instance{}.Chunk)
)

// RenderStats reports what the last grass draw submitted.
type RenderStats struct {
	Chunks        int
	VisibleChunks int
	Instances     int
	DrawCalls     int
}

// chunkBuffers holds the GPU copy of one chunk.
type chunkBuffers struct {
	vao   uint32
	vbo   uint32
	count int32
}

// GrassRenderer draws a grass entity's chunks with one instanced draw per visible chunk.
type GrassRenderer struct {
	program *shader.Program

	locViewProj    int32
	locPlacement   int32
	locTime        int32
	locLightDir    int32
	locAmbient     int32
	locDebugChunks int32

	bladeVBO   uint32
	bladeVerts int32
	ubo        uint32

	// Last published data uploaded to the GPU, compared by pointer.
	source *grass.ChunkMap
	params *grass.ParamBlob
	chunks map[grass.ChunkCoord]*chunkBuffers

	// Culling skips chunks outside the view frustum.
	Culling bool
	// DebugChunks tints every blade by its chunk coordinate.
	DebugChunks bool

	stats RenderStats
	log   *zap.Logger
}

// NewGrassRenderer compiles the grass shader and uploads the blade template.
func NewGrassRenderer(segments int, log *zap.Logger) (*GrassRenderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	gr := &GrassRenderer{
		chunks:  make(map[grass.ChunkCoord]*chunkBuffers),
		Culling: true,
		log:     log,
	}

	program, err := shader.New(shaders.GrassVertexShader, shaders.GrassFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("grass shader: %w", err)
	}
	gr.program = program

	gr.locViewProj = program.Uniform("uViewProj")
	gr.locPlacement = program.Uniform("uPlacement")
	gr.locTime = program.Uniform("uTime")
	gr.locLightDir = program.Uniform("uLightDir")
	gr.locAmbient = program.Uniform("uAmbient")
	gr.locDebugChunks = program.Uniform("uDebugChunks")

	if err := program.BindUniformBlock("GrassParams", GrassParamsBinding); err != nil {
		gr.Destroy()
		return nil, fmt.Errorf("grass shader: %w", err)
	}

	blade := BladeMesh(segments)
	gr.bladeVerts = int32(len(blade) / 2)
	gl.GenBuffers(1, &gr.bladeVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, gr.bladeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(blade)*4, unsafe.Pointer(&blade[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &gr.ubo)
	gl.BindBuffer(gl.UNIFORM_BUFFER, gr.ubo)
	gl.BufferData(gl.UNIFORM_BUFFER, grass.ParamBlobSize, nil, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, GrassParamsBinding, gr.ubo)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)

	return gr, nil
}

// Sync uploads whatever g has published since the last call.
// A new chunk map replaces every chunk buffer; a new parameter blob only
// rewrites the uniform buffer.
func (gr *GrassRenderer) Sync(g *grass.Grass) {
	if chunks := g.Chunks(); chunks != gr.source {
		gr.uploadChunks(chunks)
	}
	if params := g.Params(); params != nil && params != gr.params {
		gr.params = params
		gl.BindBuffer(gl.UNIFORM_BUFFER, gr.ubo)
		gl.BufferSubData(gl.UNIFORM_BUFFER, 0, grass.ParamBlobSize, unsafe.Pointer(params))
		gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	}
}

func (gr *GrassRenderer) uploadChunks(m *grass.ChunkMap) {
	gr.releaseChunks()
	gr.source = m
	if m == nil {
		return
	}

	m.Range(func(coord grass.ChunkCoord, insts []grass.Instance) bool {
		if len(insts) == 0 {
			return true
		}
		cb := &chunkBuffers{count: int32(len(insts))}

		gl.GenVertexArrays(1, &cb.vao)
		gl.BindVertexArray(cb.vao)

		gl.BindBuffer(gl.ARRAY_BUFFER, gr.bladeVBO)
		gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 8, 0)
		gl.EnableVertexAttribArray(0)

		gl.GenBuffers(1, &cb.vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, cb.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(insts)*int(instanceStride), unsafe.Pointer(&insts[0]), gl.STATIC_DRAW)

		gr.instanceAttrib(1, 3, offsetPosition)
		gr.instanceAttrib(2, 3, offsetNormal)
		gr.instanceAttrib(3, 2, offsetUV)
		gr.instanceAttrib(4, 3, offsetChunkCoord)

		gl.BindVertexArray(0)
		gr.chunks[coord] = cb
		return true
	})

	gr.log.Debug("grass chunks uploaded",
		zap.Int("chunks", len(gr.chunks)),
		zap.Int("instances", m.Total()))
}

func (gr *GrassRenderer) instanceAttrib(index uint32, size int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, instanceStride, offset)
	gl.EnableVertexAttribArray(index)
	gl.VertexAttribDivisor(index, 1)
}

// Render draws the visible chunks. placement is the entity's world matrix
// without scale, since blades are generated in scaled mesh space.
func (gr *GrassRenderer) Render(viewProj, placement math.Mat4, frustum math.Frustum, time float32, lightDir, ambient [3]float32) {
	gr.stats = RenderStats{Chunks: len(gr.chunks)}
	if gr.source == nil || gr.params == nil || len(gr.chunks) == 0 {
		return
	}

	var coords []grass.ChunkCoord
	if gr.Culling {
		coords = gr.source.Visible(frustum, placement)
	} else {
		coords = gr.source.Coords()
	}
	gr.stats.VisibleChunks = len(coords)
	if len(coords) == 0 {
		return
	}

	gr.program.Use()
	gl.UniformMatrix4fv(gr.locViewProj, 1, false, &viewProj[0])
	gl.UniformMatrix4fv(gr.locPlacement, 1, false, &placement[0])
	gl.Uniform1f(gr.locTime, time)
	gl.Uniform3f(gr.locLightDir, lightDir[0], lightDir[1], lightDir[2])
	gl.Uniform3f(gr.locAmbient, ambient[0], ambient[1], ambient[2])
	debug := int32(0)
	if gr.DebugChunks {
		debug = 1
	}
	gl.Uniform1i(gr.locDebugChunks, debug)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, GrassParamsBinding, gr.ubo)

	// Blades are flat cards seen from both sides.
	gl.Disable(gl.CULL_FACE)

	for _, coord := range coords {
		cb, ok := gr.chunks[coord]
		if !ok {
			continue
		}
		gl.BindVertexArray(cb.vao)
		gl.DrawArraysInstanced(gl.TRIANGLE_STRIP, 0, gr.bladeVerts, cb.count)
		gr.stats.Instances += int(cb.count)
		gr.stats.DrawCalls++
	}
	gl.BindVertexArray(0)
}

// Stats returns the counters of the last Render call.
func (gr *GrassRenderer) Stats() RenderStats {
	return gr.stats
}

func (gr *GrassRenderer) releaseChunks() {
	for coord, cb := range gr.chunks {
		gl.DeleteVertexArrays(1, &cb.vao)
		gl.DeleteBuffers(1, &cb.vbo)
		delete(gr.chunks, coord)
	}
	gr.source = nil
}

// Destroy releases all GPU resources.
func (gr *GrassRenderer) Destroy() {
	gr.releaseChunks()
	gr.params = nil
	if gr.bladeVBO != 0 {
		gl.DeleteBuffers(1, &gr.bladeVBO)
		gr.bladeVBO = 0
	}
	if gr.ubo != 0 {
		gl.DeleteBuffers(1, &gr.ubo)
		gr.ubo = 0
	}
	if gr.program != nil {
		gr.program.Delete()
		gr.program = nil
	}
}
