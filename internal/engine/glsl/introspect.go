package glsl

import "github.com/go-gl/gl/v4.1-core/gl"

// InvalidIndex is the driver sentinel returned for uniform block names
// that are not active in the linked program.
const InvalidIndex uint32 = gl.INVALID_INDEX

// The introspection calls below are direct driver passthroughs. They are
// only meaningful after a successful link, return driver sentinels rather
// than errors for absent names, and do not validate caller buffer sizes.
// This keeps per-frame lookups free of error handling on hot paths.

// GetUniformBlockIndex returns the driver-assigned index of a named
// uniform block, or InvalidIndex if the block is not active.
func (p *Program) GetUniformBlockIndex(name string) uint32 {
	return gl.GetUniformBlockIndex(p.id, gl.Str(name+"\x00"))
}

// GetUniformBlockDataSize returns the compiler-generated byte size of the
// uniform block at index.
func (p *Program) GetUniformBlockDataSize(index uint32) int32 {
	var size int32
	gl.GetActiveUniformBlockiv(p.id, index, gl.UNIFORM_BLOCK_DATA_SIZE, &size)
	return size
}

// GetUniformIndices fills indices with the index of each named uniform.
// The caller sizes indices to len(names); absent names yield InvalidIndex.
func (p *Program) GetUniformIndices(names []string, indices []uint32) {
	if len(names) == 0 {
		return
	}
	terminated := make([]string, len(names))
	for i, n := range names {
		terminated[i] = n + "\x00"
	}
	cnames, free := gl.Strs(terminated...)
	gl.GetUniformIndices(p.id, int32(len(names)), cnames, &indices[0])
	free()
}

// GetActiveUniformsIndexValues fills values with the property selected by
// pname (gl.UNIFORM_OFFSET, gl.UNIFORM_SIZE, gl.UNIFORM_TYPE) for each
// uniform index. The caller sizes values to len(indices).
func (p *Program) GetActiveUniformsIndexValues(indices []uint32, pname uint32, values []int32) {
	if len(indices) == 0 {
		return
	}
	gl.GetActiveUniformsiv(p.id, int32(len(indices)), &indices[0], pname, &values[0])
}

// BindBufferRange associates a range of a buffer object with the binding
// point at index. Offset 0 with the full buffer length binds the entire
// buffer. Target is gl.UNIFORM_BUFFER or gl.TRANSFORM_FEEDBACK_BUFFER.
func (p *Program) BindBufferRange(target uint32, index, buffer uint32, offset, size int) {
	gl.BindBufferRange(target, index, buffer, offset, size)
}

// BlockUniformBinding assigns a uniform block index to an explicit
// binding point. The assignment takes effect at the next LinkShaders;
// requests made after a link apply only when the program is linked again.
func (p *Program) BlockUniformBinding(blockIndex, bindingPoint uint32) {
	if p.pendingBlockBindings == nil {
		p.pendingBlockBindings = make(map[uint32]uint32)
	}
	p.pendingBlockBindings[blockIndex] = bindingPoint
}

// GetSubroutineUniformLocation returns the location of a subroutine
// uniform in the given stage, or -1 if it is not active.
func (p *Program) GetSubroutineUniformLocation(stage StageKind, name string) int32 {
	return gl.GetSubroutineUniformLocation(p.id, stage.GLEnum(), gl.Str(name+"\x00"))
}

// GetSubroutineIndex returns the index of a named subroutine function in
// the given stage, or InvalidIndex if it is not present.
func (p *Program) GetSubroutineIndex(stage StageKind, name string) uint32 {
	return gl.GetSubroutineIndex(p.id, stage.GLEnum(), gl.Str(name+"\x00"))
}

// UniformSubroutinesuiv selects the active subroutines for a stage. The
// i'th subroutine uniform is assigned indices[i]; the caller must supply
// exactly as many indices as the stage has active subroutine uniforms.
func (p *Program) UniformSubroutinesuiv(stage StageKind, indices []uint32) {
	if len(indices) == 0 {
		return
	}
	gl.UniformSubroutinesuiv(stage.GLEnum(), int32(len(indices)), &indices[0])
}
