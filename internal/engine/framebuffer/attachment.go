package framebuffer

import "github.com/go-gl/gl/v4.1-core/gl"

// defaultSamples is used when a multisampled attachment is requested with
// a sample count below 1.
const defaultSamples int32 = 4

// attachmentFormat describes where and how an attachment stores pixels.
type attachmentFormat struct {
	point          uint32 // framebuffer attachment point
	internalFormat uint32
	pixelFormat    uint32
	pixelType      uint32
}

// resolveAttachment maps the depth/stencil flag combination to one of the
// four attachment kinds: color, depth, stencil, or combined depth+stencil.
func resolveAttachment(depth, stencil bool) attachmentFormat {
	switch {
	case depth && stencil:
		return attachmentFormat{
			point:          gl.DEPTH_STENCIL_ATTACHMENT,
			internalFormat: gl.DEPTH24_STENCIL8,
			pixelFormat:    gl.DEPTH_STENCIL,
			pixelType:      gl.UNSIGNED_INT_24_8,
		}
	case depth:
		return attachmentFormat{
			point:          gl.DEPTH_ATTACHMENT,
			internalFormat: gl.DEPTH_COMPONENT24,
			pixelFormat:    gl.DEPTH_COMPONENT,
			pixelType:      gl.UNSIGNED_INT,
		}
	case stencil:
		return attachmentFormat{
			point:          gl.STENCIL_ATTACHMENT,
			internalFormat: gl.STENCIL_INDEX8,
			pixelFormat:    gl.STENCIL_INDEX,
			pixelType:      gl.UNSIGNED_BYTE,
		}
	default:
		return attachmentFormat{
			point:          gl.COLOR_ATTACHMENT0,
			internalFormat: gl.RGB8,
			pixelFormat:    gl.RGB,
			pixelType:      gl.UNSIGNED_BYTE,
		}
	}
}
