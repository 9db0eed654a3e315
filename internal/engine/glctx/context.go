// Package glctx tracks the process-wide OpenGL binding state explicitly.
//
// OpenGL keeps one active program and one bound framebuffer per target as
// hidden global state. A Context mirrors that state host-side so bind and
// use calls can be checked for misuse (stomping a live binding, unbinding
// something that was never bound) without touching the driver.
package glctx

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/driftworks/ember/internal/logger"
)

// Target selects which framebuffer binding point an operation applies to.
type Target int

const (
	// TargetDraw is the destination of rendering commands.
	TargetDraw Target = iota
	// TargetRead is the source of pixel reads and blits.
	TargetRead
	// TargetBoth binds draw and read at once.
	TargetBoth
)

// GLEnum returns the OpenGL binding target for t.
func (t Target) GLEnum() uint32 {
	switch t {
	case TargetDraw:
		return gl.DRAW_FRAMEBUFFER
	case TargetRead:
		return gl.READ_FRAMEBUFFER
	default:
		return gl.FRAMEBUFFER
	}
}

// String returns a human-readable target name.
func (t Target) String() string {
	switch t {
	case TargetDraw:
		return "draw"
	case TargetRead:
		return "read"
	default:
		return "draw+read"
	}
}

// Context tracks the currently active program and framebuffer bindings.
// It performs no GL calls itself; resource wrappers report their binds
// through it. One Context belongs to one rendering context/thread.
type Context struct {
	debug bool
	log   *zap.Logger

	activeProgram uint32
	drawFBO       uint32
	readFBO       uint32
}

// New creates a Context. With debug enabled, binding misuse is logged.
func New(debug bool) *Context {
	return &Context{
		debug: debug,
		log:   logger.L(),
	}
}

// BindProgram records program id as active.
func (c *Context) BindProgram(id uint32) {
	if c.debug && c.activeProgram != 0 && c.activeProgram != id {
		c.log.Warn("program bound while another is active",
			zap.Uint32("active", c.activeProgram),
			zap.Uint32("binding", id),
		)
	}
	c.activeProgram = id
}

// UnbindProgram records the no-program state. The id is the program the
// caller believes it is releasing.
func (c *Context) UnbindProgram(id uint32) {
	if c.debug && c.activeProgram != id {
		c.log.Warn("program unbound but was not the active one",
			zap.Uint32("active", c.activeProgram),
			zap.Uint32("unbinding", id),
		)
	}
	c.activeProgram = 0
}

// ActiveProgram returns the program recorded as active, 0 for none.
func (c *Context) ActiveProgram() uint32 {
	return c.activeProgram
}

// BindFramebuffer records framebuffer id as bound to target.
func (c *Context) BindFramebuffer(target Target, id uint32) {
	if target == TargetDraw || target == TargetBoth {
		if c.debug && c.drawFBO != 0 && c.drawFBO != id {
			c.log.Warn("framebuffer bound while another is bound",
				zap.String("target", "draw"),
				zap.Uint32("bound", c.drawFBO),
				zap.Uint32("binding", id),
			)
		}
		c.drawFBO = id
	}
	if target == TargetRead || target == TargetBoth {
		if c.debug && c.readFBO != 0 && c.readFBO != id {
			c.log.Warn("framebuffer bound while another is bound",
				zap.String("target", "read"),
				zap.Uint32("bound", c.readFBO),
				zap.Uint32("binding", id),
			)
		}
		c.readFBO = id
	}
}

// UnbindFramebuffer records the default framebuffer as bound to target.
func (c *Context) UnbindFramebuffer(target Target, id uint32) {
	if target == TargetDraw || target == TargetBoth {
		if c.debug && c.drawFBO != id {
			c.log.Warn("framebuffer unbound but was not the bound one",
				zap.String("target", "draw"),
				zap.Uint32("bound", c.drawFBO),
				zap.Uint32("unbinding", id),
			)
		}
		c.drawFBO = 0
	}
	if target == TargetRead || target == TargetBoth {
		if c.debug && c.readFBO != id {
			c.log.Warn("framebuffer unbound but was not the bound one",
				zap.String("target", "read"),
				zap.Uint32("bound", c.readFBO),
				zap.Uint32("unbinding", id),
			)
		}
		c.readFBO = 0
	}
}

// BoundFramebuffer returns the framebuffer recorded for target, 0 for the
// default framebuffer. TargetBoth reports the draw binding.
func (c *Context) BoundFramebuffer(target Target) uint32 {
	if target == TargetRead {
		return c.readFBO
	}
	return c.drawFBO
}
