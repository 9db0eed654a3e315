// Package framebuffer provides OpenGL framebuffer objects for offscreen
// rendering, with texture or renderbuffer attachments and full-screen
// presentation of the captured image.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/driftworks/ember/internal/engine/glctx"
	"github.com/driftworks/ember/internal/logger"
)

// Framebuffer owns an offscreen render target. Attachments are declared
// after construction; a complete framebuffer needs at least one color
// attachment. The owner must call Destroy exactly once; destroying while
// still bound is undefined driver behavior.
type Framebuffer struct {
	width  int32
	height int32

	fbo     uint32
	rbo     uint32
	texture uint32

	multisampled bool
	quad         *ScreenQuad
}

// New allocates a framebuffer object handle for the given dimensions.
func New(width, height int32) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("framebuffer dimensions must be positive, got %dx%d", width, height)
	}

	fb := &Framebuffer{
		width:  width,
		height: height,
	}
	gl.GenFramebuffers(1, &fb.fbo)

	logger.L().Debug("framebuffer created",
		zap.Uint32("fbo", fb.fbo),
		zap.Int32("width", width),
		zap.Int32("height", height),
	)
	return fb, nil
}

// AttachTexture2D creates a texture sized to the framebuffer and attaches
// it at the point selected by the depth/stencil flags (color when both are
// false). Texture attachments remain sampleable afterwards. A multisampled
// attachment uses samples subsamples per pixel (minimum 1; values below 1
// fall back to 4).
func (fb *Framebuffer) AttachTexture2D(depth, stencil, multisampled bool, samples int32) {
	af := resolveAttachment(depth, stencil)

	prev := saveBinding()
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	gl.GenTextures(1, &fb.texture)
	if multisampled {
		if samples < 1 {
			samples = defaultSamples
		}
		gl.BindTexture(gl.TEXTURE_2D_MULTISAMPLE, fb.texture)
		gl.TexImage2DMultisample(gl.TEXTURE_2D_MULTISAMPLE, samples, af.internalFormat, fb.width, fb.height, true)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, af.point, gl.TEXTURE_2D_MULTISAMPLE, fb.texture, 0)
		gl.BindTexture(gl.TEXTURE_2D_MULTISAMPLE, 0)
		fb.multisampled = true
	} else {
		gl.BindTexture(gl.TEXTURE_2D, fb.texture)
		gl.TexImage2D(gl.TEXTURE_2D, 0, int32(af.internalFormat), fb.width, fb.height, 0, af.pixelFormat, af.pixelType, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, af.point, gl.TEXTURE_2D, fb.texture, 0)
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}

	restoreBinding(prev)
	logger.L().Debug("texture attached",
		zap.Uint32("fbo", fb.fbo),
		zap.Uint32("texture", fb.texture),
		zap.Bool("depth", depth),
		zap.Bool("stencil", stencil),
		zap.Bool("multisampled", multisampled),
	)
}

// AttachRenderbuffer is the renderbuffer equivalent of AttachTexture2D.
// Renderbuffer storage cannot be sampled by shaders afterwards; use it for
// attachments that are only written, which is cheaper on some drivers.
func (fb *Framebuffer) AttachRenderbuffer(depth, stencil, multisampled bool, samples int32) {
	af := resolveAttachment(depth, stencil)

	prev := saveBinding()
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	gl.GenRenderbuffers(1, &fb.rbo)
	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.rbo)
	if multisampled {
		if samples < 1 {
			samples = defaultSamples
		}
		gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, samples, af.internalFormat, fb.width, fb.height)
		fb.multisampled = true
	} else {
		gl.RenderbufferStorage(gl.RENDERBUFFER, af.internalFormat, fb.width, fb.height)
	}
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, af.point, gl.RENDERBUFFER, fb.rbo)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	restoreBinding(prev)
	logger.L().Debug("renderbuffer attached",
		zap.Uint32("fbo", fb.fbo),
		zap.Uint32("rbo", fb.rbo),
		zap.Bool("depth", depth),
		zap.Bool("stencil", stencil),
		zap.Bool("multisampled", multisampled),
	)
}

// CheckFramebufferStatus reports whether the current attachment set is
// complete per the driver's completeness rules. Incompleteness is not an
// error; diagnosis is left to the caller.
func (fb *Framebuffer) CheckFramebufferStatus() bool {
	prev := saveBinding()
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	restoreBinding(prev)

	if status != gl.FRAMEBUFFER_COMPLETE {
		logger.L().Warn("framebuffer incomplete",
			zap.Uint32("fbo", fb.fbo),
			zap.String("status", fmt.Sprintf("0x%x", status)),
		)
		return false
	}
	return true
}

// Bind makes this framebuffer the active render target for target and
// sizes the viewport to it when drawing.
func (fb *Framebuffer) Bind(ctx *glctx.Context, target glctx.Target) {
	gl.BindFramebuffer(target.GLEnum(), fb.fbo)
	if target != glctx.TargetRead {
		gl.Viewport(0, 0, fb.width, fb.height)
	}
	ctx.BindFramebuffer(target, fb.fbo)
}

// Unbind restores the default framebuffer for target. It does not restore
// a previously bound framebuffer.
func (fb *Framebuffer) Unbind(ctx *glctx.Context, target glctx.Target) {
	gl.BindFramebuffer(target.GLEnum(), 0)
	ctx.UnbindFramebuffer(target, fb.fbo)
}

// Blit copies the buffers selected by mask (for example
// gl.COLOR_BUFFER_BIT) from the bound read framebuffer to the bound draw
// framebuffer, scaling with filter if needed. The caller must have bound
// source and destination beforehand; a multisampled source resolves into a
// non-multisampled destination.
func (fb *Framebuffer) Blit(mask uint32, filter uint32) {
	gl.BlitFramebuffer(
		0, 0, fb.width, fb.height,
		0, 0, fb.width, fb.height,
		mask, filter,
	)
}

// Render presents the color texture on the default framebuffer through
// the internal full-screen quad. The color attachment must be a
// non-multisampled texture; resolve multisampled content with Blit first.
func (fb *Framebuffer) Render(ctx *glctx.Context) error {
	if fb.quad == nil {
		quad, err := newScreenQuad(ctx)
		if err != nil {
			return fmt.Errorf("creating screen quad: %w", err)
		}
		fb.quad = quad
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	ctx.BindFramebuffer(glctx.TargetBoth, 0)

	return fb.quad.Render(ctx, fb.texture)
}

// Clear clears the color and depth buffers with the given color. The
// framebuffer must be bound.
func (fb *Framebuffer) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels reads the color attachment into an RGBA byte slice. The
// image is flipped vertically (OpenGL has its origin at bottom-left).
func (fb *Framebuffer) ReadPixels() []byte {
	pixels := make([]byte, fb.width*fb.height*4)

	prev := saveBinding()
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.ReadPixels(0, 0, fb.width, fb.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	restoreBinding(prev)

	return pixels
}

// Destroy releases the framebuffer and any renderbuffer, texture, and
// quad resources owned by this instance.
func (fb *Framebuffer) Destroy() {
	if fb.quad != nil {
		fb.quad.Destroy()
		fb.quad = nil
	}
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
	if fb.rbo != 0 {
		gl.DeleteRenderbuffers(1, &fb.rbo)
		fb.rbo = 0
	}
	if fb.texture != 0 {
		gl.DeleteTextures(1, &fb.texture)
		fb.texture = 0
	}
}

// FBO returns the framebuffer object handle.
func (fb *Framebuffer) FBO() uint32 {
	return fb.fbo
}

// TextureBuffer returns the color attachment texture handle, 0 when the
// color attachment is a renderbuffer.
func (fb *Framebuffer) TextureBuffer() uint32 {
	return fb.texture
}

// Width returns the framebuffer width in pixels.
func (fb *Framebuffer) Width() int32 {
	return fb.width
}

// Height returns the framebuffer height in pixels.
func (fb *Framebuffer) Height() int32 {
	return fb.height
}

// saveBinding records the framebuffer bound before a temporary rebind.
func saveBinding() uint32 {
	var prev int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prev)
	return uint32(prev)
}

func restoreBinding(prev uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, prev)
}
