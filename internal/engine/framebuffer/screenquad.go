package framebuffer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/driftworks/ember/internal/engine/framebuffer/shaders"
	"github.com/driftworks/ember/internal/engine/glctx"
	"github.com/driftworks/ember/internal/engine/glsl"
)

// ScreenQuad is the fixed full-screen geometry used to present a
// framebuffer's color texture on screen. It owns its own present shader.
type ScreenQuad struct {
	vao     uint32
	vbo     uint32
	program *glsl.Program
}

// newScreenQuad compiles the present shader and uploads the quad geometry.
func newScreenQuad(ctx *glctx.Context) (*ScreenQuad, error) {
	q := &ScreenQuad{
		program: glsl.NewProgram(),
	}

	if err := q.program.CompileShadersFromSource(shaders.QuadVertexShader, shaders.QuadFragmentShader); err != nil {
		return nil, fmt.Errorf("quad shader: %w", err)
	}
	if err := q.program.LinkShaders(); err != nil {
		return nil, fmt.Errorf("quad shader: %w", err)
	}
	if err := q.program.RegisterUniform("screenTexture"); err != nil {
		return nil, err
	}

	// Two triangles covering clip space: position (x, y) + texcoord (u, v)
	vertices := []float32{
		-1.0, 1.0, 0.0, 1.0,
		-1.0, -1.0, 0.0, 0.0,
		1.0, -1.0, 1.0, 0.0,

		-1.0, 1.0, 0.0, 1.0,
		1.0, -1.0, 1.0, 0.0,
		1.0, 1.0, 1.0, 1.0,
	}

	gl.GenVertexArrays(1, &q.vao)
	gl.BindVertexArray(q.vao)

	gl.GenBuffers(1, &q.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, nil)
	gl.EnableVertexAttribArray(0)

	// Texcoord attribute (location = 1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, unsafe.Pointer(uintptr(2*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	// The sampler reads texture unit 0, set once.
	if err := q.program.Use(ctx); err != nil {
		return nil, err
	}
	loc, err := q.program.GetUniformLocation("screenTexture")
	if err != nil {
		return nil, err
	}
	gl.Uniform1i(loc, 0)
	if err := q.program.UnUse(ctx); err != nil {
		return nil, err
	}

	return q, nil
}

// Render draws texture across the currently bound framebuffer.
func (q *ScreenQuad) Render(ctx *glctx.Context, texture uint32) error {
	if err := q.program.Use(ctx); err != nil {
		return err
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.BindVertexArray(q.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return q.program.UnUse(ctx)
}

// Destroy releases the quad geometry and its shader program.
func (q *ScreenQuad) Destroy() {
	if q.vao != 0 {
		gl.DeleteVertexArrays(1, &q.vao)
		q.vao = 0
	}
	if q.vbo != 0 {
		gl.DeleteBuffers(1, &q.vbo)
		q.vbo = 0
	}
	if q.program != nil {
		q.program.Dispose()
	}
}
