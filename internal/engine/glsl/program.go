// Package glsl manages the lifecycle of GLSL shader programs: compiling
// stages, linking, introspection, and binding.
//
// A Program moves through a strict call order:
//
//	CompileShaders -> LinkShaders -> (Register*/Get*) -> Use/UnUse -> Dispose
//
// Locations are only valid after a successful link. Only one program can
// be in use per rendering context; UnUse resets to the no-program state
// and never restores a previously active program, so nesting Use across
// programs is the caller's responsibility to avoid.
package glsl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/driftworks/ember/internal/engine/glctx"
	"github.com/driftworks/ember/internal/logger"
)

// State is the lifecycle state of a Program.
type State int

const (
	StateUninitialized State = iota
	StateCompiling
	StateLinked
	StateInUse
	StateDisposed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateCompiling:
		return "compiling"
	case StateLinked:
		return "linked"
	case StateInUse:
		return "in-use"
	case StateDisposed:
		return "disposed"
	default:
		return "invalid"
	}
}

// Program owns one linked GPU program built from one or more stages.
type Program struct {
	id     uint32
	state  State
	stages []Stage

	attribs  map[string]int32
	uniforms map[string]int32

	// Block bindings requested before link, applied on the next
	// successful LinkShaders.
	pendingBlockBindings map[uint32]uint32
}

// NewProgram creates an empty program in the uninitialized state.
func NewProgram() *Program {
	return &Program{
		attribs:  make(map[string]int32),
		uniforms: make(map[string]int32),
	}
}

// ID returns the GPU program handle, 0 before a successful link.
func (p *Program) ID() uint32 {
	return p.id
}

// State returns the current lifecycle state.
func (p *Program) State() State {
	return p.state
}

// CompileShaders compiles each stage into a GPU shader object. On any
// failure the shader objects already created are released before the
// error is returned, so no GPU resources leak on the error path. A batch
// already compiled must be linked or disposed before compiling again;
// recompiling a linked program is allowed, and a failed recompile leaves
// the previous link usable.
func (p *Program) CompileShaders(stages []Stage) error {
	if p.state != StateUninitialized && p.state != StateLinked {
		return &StateError{Op: "CompileShaders", State: p.state}
	}
	if len(stages) == 0 {
		return fmt.Errorf("no shader stages supplied")
	}

	p.state = StateCompiling

	compiled := make([]Stage, 0, len(stages))
	for _, st := range stages {
		src, err := st.loadSource()
		if err != nil {
			releaseStages(compiled)
			p.resetAfterFailure()
			return fmt.Errorf("%s shader %q: %w", st.Kind, st.Name, err)
		}

		id, err := compileStage(src, st)
		if err != nil {
			releaseStages(compiled)
			p.resetAfterFailure()
			return err
		}

		st.id = id
		compiled = append(compiled, st)
	}

	p.stages = compiled
	return nil
}

// CompileShadersFromSource compiles a vertex and a fragment stage from raw
// source text.
func (p *Program) CompileShadersFromSource(vertexSrc, fragmentSrc string) error {
	return p.CompileShaders([]Stage{
		NewStageFromSource(VertexStage, vertexSrc, "vertex"),
		NewStageFromSource(FragmentStage, fragmentSrc, "fragment"),
	})
}

// LinkShaders attaches the compiled stage objects to a new program object
// and links it. On success the stage objects are detached and deleted;
// only the linked program remains. Block bindings requested through
// BlockUniformBinding are applied after the link.
func (p *Program) LinkShaders() error {
	if p.state != StateCompiling {
		return &StateError{Op: "LinkShaders", State: p.state}
	}

	program := gl.CreateProgram()
	for i := range p.stages {
		gl.AttachShader(program, p.stages[i].id)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		diag := programInfoLog(program)
		for i := range p.stages {
			gl.DetachShader(program, p.stages[i].id)
			gl.DeleteShader(p.stages[i].id)
		}
		gl.DeleteProgram(program)
		p.resetAfterFailure()
		return &LinkError{Log: diag}
	}

	// The linked program carries the stages; the objects are no longer
	// needed.
	for i := range p.stages {
		gl.DetachShader(program, p.stages[i].id)
		gl.DeleteShader(p.stages[i].id)
		p.stages[i].id = 0
	}

	// Relinking replaces the previous program object; cached locations
	// belong to the old link and are discarded with it.
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		clear(p.attribs)
		clear(p.uniforms)
	}
	p.id = program

	for blockIndex, binding := range p.pendingBlockBindings {
		gl.UniformBlockBinding(p.id, blockIndex, binding)
	}
	p.pendingBlockBindings = nil

	p.state = StateLinked
	logger.L().Debug("shader program linked",
		zap.Uint32("program", p.id),
		zap.Int("stages", len(p.stages)),
	)
	return nil
}

// RegisterAttribute queries and caches the location of a named vertex
// attribute. Names the driver eliminated resolve to -1 and are cached as
// such; that is not an error.
func (p *Program) RegisterAttribute(name string) error {
	if p.state != StateLinked && p.state != StateInUse {
		return &StateError{Op: "RegisterAttribute", State: p.state}
	}
	p.attribs[name] = gl.GetAttribLocation(p.id, gl.Str(name+"\x00"))
	return nil
}

// RegisterUniform queries and caches the location of a named uniform.
// Names the driver eliminated resolve to -1 and are cached as such.
func (p *Program) RegisterUniform(name string) error {
	if p.state != StateLinked && p.state != StateInUse {
		return &StateError{Op: "RegisterUniform", State: p.state}
	}
	p.uniforms[name] = gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	return nil
}

// GetAttribLocation returns the cached location for a registered
// attribute name.
func (p *Program) GetAttribLocation(name string) (int32, error) {
	loc, ok := p.attribs[name]
	if !ok {
		return -1, &NotFoundError{Kind: "attribute", Name: name}
	}
	return loc, nil
}

// GetUniformLocation returns the cached location for a registered uniform
// name.
func (p *Program) GetUniformLocation(name string) (int32, error) {
	loc, ok := p.uniforms[name]
	if !ok {
		return -1, &NotFoundError{Kind: "uniform", Name: name}
	}
	return loc, nil
}

// Use binds this program as the active one and records it on ctx.
func (p *Program) Use(ctx *glctx.Context) error {
	if p.state != StateLinked {
		return &StateError{Op: "Use", State: p.state}
	}
	gl.UseProgram(p.id)
	ctx.BindProgram(p.id)
	p.state = StateInUse
	return nil
}

// UnUse restores the no-program state. It does not restore a previously
// active program.
func (p *Program) UnUse(ctx *glctx.Context) error {
	if p.state != StateInUse {
		return &StateError{Op: "UnUse", State: p.state}
	}
	gl.UseProgram(0)
	ctx.UnbindProgram(p.id)
	p.state = StateLinked
	return nil
}

// Dispose releases the GPU program handle and any compiled stage objects
// that were never linked. Further use of the program is a lifecycle
// violation.
func (p *Program) Dispose() {
	if p.state == StateDisposed {
		return
	}
	for i := range p.stages {
		if p.stages[i].id != 0 {
			gl.DeleteShader(p.stages[i].id)
			p.stages[i].id = 0
		}
	}
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
	p.state = StateDisposed
}

// compileStage creates and compiles one GPU shader object.
func compileStage(source string, st Stage) (uint32, error) {
	id := gl.CreateShader(st.Kind.GLEnum())

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		diag := shaderInfoLog(id)
		gl.DeleteShader(id)
		return 0, &CompileError{Stage: st.Name, Log: diag}
	}

	return id, nil
}

// resetAfterFailure drops the in-flight stage batch and returns the
// program to its last stable state: linked while a previous link is still
// live, uninitialized otherwise.
func (p *Program) resetAfterFailure() {
	p.stages = nil
	if p.id != 0 {
		p.state = StateLinked
		return
	}
	p.state = StateUninitialized
}

// releaseStages deletes the shader objects of already-compiled stages on
// the compile failure path.
func releaseStages(stages []Stage) {
	for i := range stages {
		if stages[i].id != 0 {
			gl.DeleteShader(stages[i].id)
		}
	}
}

func shaderInfoLog(id uint32) string {
	var logLen int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return "no diagnostic reported"
	}
	diag := make([]byte, logLen)
	gl.GetShaderInfoLog(id, logLen, nil, &diag[0])
	return strings.TrimRight(string(diag), "\x00\n")
}

func programInfoLog(id uint32) string {
	var logLen int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return "no diagnostic reported"
	}
	diag := make([]byte, logLen)
	gl.GetProgramInfoLog(id, logLen, nil, &diag[0])
	return strings.TrimRight(string(diag), "\x00\n")
}
