package main

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/driftworks/ember/internal/engine/framebuffer"
	"github.com/driftworks/ember/internal/engine/glctx"
	"github.com/driftworks/ember/internal/engine/glsl"
	"github.com/driftworks/ember/internal/engine/screen"
	"github.com/driftworks/ember/internal/logger"
)

const demoVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

out vec3 vColor;

void main() {
    gl_Position = vec4(aPos, 1.0);
    vColor = aColor;
}
`

const demoFragmentShader = `
#version 410 core

in vec3 vColor;
out vec4 FragColor;

subroutine vec3 ColorMode(vec3 color);

subroutine(ColorMode) vec3 passThrough(vec3 color) {
    return color;
}

subroutine(ColorMode) vec3 grayscale(vec3 color) {
    float l = dot(color, vec3(0.299, 0.587, 0.114));
    return vec3(l);
}

subroutine uniform ColorMode colorMode;

void main() {
    FragColor = vec4(colorMode(vColor), 1.0);
}
`

// demoScreen draws an antialiased triangle offscreen and presents it,
// flipping the fragment subroutine between color and grayscale every two
// seconds.
type demoScreen struct {
	ctx     *glctx.Context
	width   int32
	height  int32
	samples int32

	program   *glsl.Program
	sceneFB   *framebuffer.Framebuffer
	resolveFB *framebuffer.Framebuffer

	triangleVAO uint32
	triangleVBO uint32

	passIdx uint32
	grayIdx uint32

	elapsed float64
}

func newDemoScreen(ctx *glctx.Context, width, height, samples int32) *demoScreen {
	return &demoScreen{
		ctx:     ctx,
		width:   width,
		height:  height,
		samples: samples,
	}
}

func (d *demoScreen) OnEntry() error {
	d.program = glsl.NewProgram()
	if err := d.program.CompileShadersFromSource(demoVertexShader, demoFragmentShader); err != nil {
		return fmt.Errorf("demo shader: %w", err)
	}
	if err := d.program.LinkShaders(); err != nil {
		return fmt.Errorf("demo shader: %w", err)
	}
	if err := d.program.RegisterAttribute("aPos"); err != nil {
		return err
	}
	if err := d.program.RegisterAttribute("aColor"); err != nil {
		return err
	}

	d.passIdx = d.program.GetSubroutineIndex(glsl.FragmentStage, "passThrough")
	d.grayIdx = d.program.GetSubroutineIndex(glsl.FragmentStage, "grayscale")
	if d.passIdx == glsl.InvalidIndex || d.grayIdx == glsl.InvalidIndex {
		return fmt.Errorf("color mode subroutines not found in demo shader")
	}

	d.createTriangle()

	var err error
	d.sceneFB, err = framebuffer.New(d.width, d.height)
	if err != nil {
		return err
	}
	d.sceneFB.AttachTexture2D(false, false, true, d.samples)
	d.sceneFB.AttachRenderbuffer(true, false, true, d.samples)
	if !d.sceneFB.CheckFramebufferStatus() {
		return fmt.Errorf("multisampled scene framebuffer incomplete")
	}

	d.resolveFB, err = framebuffer.New(d.width, d.height)
	if err != nil {
		return err
	}
	d.resolveFB.AttachTexture2D(false, false, false, 0)
	if !d.resolveFB.CheckFramebufferStatus() {
		return fmt.Errorf("resolve framebuffer incomplete")
	}

	logger.Info("demo screen ready",
		zap.Int32("width", d.width),
		zap.Int32("height", d.height),
		zap.Int32("samples", d.samples),
	)
	return nil
}

func (d *demoScreen) OnExit() error {
	if d.sceneFB != nil {
		d.sceneFB.Destroy()
	}
	if d.resolveFB != nil {
		d.resolveFB.Destroy()
	}
	if d.triangleVAO != 0 {
		gl.DeleteVertexArrays(1, &d.triangleVAO)
	}
	if d.triangleVBO != 0 {
		gl.DeleteBuffers(1, &d.triangleVBO)
	}
	if d.program != nil {
		d.program.Dispose()
	}
	return nil
}

func (d *demoScreen) Update(dt float64) error {
	d.elapsed += dt
	return nil
}

func (d *demoScreen) Draw() error {
	// Offscreen pass into the multisampled target.
	d.sceneFB.Bind(d.ctx, glctx.TargetBoth)
	d.sceneFB.Clear(0.1, 0.1, 0.15, 1.0)

	if err := d.program.Use(d.ctx); err != nil {
		return err
	}

	mode := d.passIdx
	if int(d.elapsed/2)%2 == 1 {
		mode = d.grayIdx
	}
	d.program.UniformSubroutinesuiv(glsl.FragmentStage, []uint32{mode})

	gl.BindVertexArray(d.triangleVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)

	if err := d.program.UnUse(d.ctx); err != nil {
		return err
	}
	d.sceneFB.Unbind(d.ctx, glctx.TargetBoth)

	// Resolve the multisampled image into the sampleable target.
	d.sceneFB.Bind(d.ctx, glctx.TargetRead)
	d.resolveFB.Bind(d.ctx, glctx.TargetDraw)
	d.sceneFB.Blit(gl.COLOR_BUFFER_BIT, gl.NEAREST)
	d.resolveFB.Unbind(d.ctx, glctx.TargetDraw)
	d.sceneFB.Unbind(d.ctx, glctx.TargetRead)

	// Present on the default framebuffer.
	return d.resolveFB.Render(d.ctx)
}

func (d *demoScreen) State() screen.State {
	return screen.StateRunning
}

// createTriangle uploads the demo triangle geometry.
func (d *demoScreen) createTriangle() {
	// Position (x, y, z) + color (r, g, b)
	vertices := []float32{
		0.0, 0.5, 0.0, 1.0, 0.0, 0.0, // Top - Red
		-0.5, -0.5, 0.0, 0.0, 1.0, 0.0, // Bottom Left - Green
		0.5, -0.5, 0.0, 0.0, 0.0, 1.0, // Bottom Right - Blue
	}

	gl.GenVertexArrays(1, &d.triangleVAO)
	gl.BindVertexArray(d.triangleVAO)

	gl.GenBuffers(1, &d.triangleVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.triangleVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}
