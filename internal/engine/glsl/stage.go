package glsl

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// StageKind identifies one compilable unit of a shader program.
type StageKind int

const (
	VertexStage StageKind = iota
	FragmentStage
	TessControlStage
	TessEvalStage
	GeometryStage
)

// GLEnum returns the OpenGL shader type for k.
func (k StageKind) GLEnum() uint32 {
	switch k {
	case VertexStage:
		return gl.VERTEX_SHADER
	case FragmentStage:
		return gl.FRAGMENT_SHADER
	case TessControlStage:
		return gl.TESS_CONTROL_SHADER
	case TessEvalStage:
		return gl.TESS_EVALUATION_SHADER
	case GeometryStage:
		return gl.GEOMETRY_SHADER
	default:
		return 0
	}
}

// String returns a human-readable stage name.
func (k StageKind) String() string {
	switch k {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	case TessControlStage:
		return "tess-control"
	case TessEvalStage:
		return "tess-eval"
	case GeometryStage:
		return "geometry"
	default:
		return "unknown"
	}
}

// Stage describes one shader stage of a program. The source comes either
// from FilePath, loaded at compile time, or from raw text supplied via
// NewStageFromSource. The GPU shader object id only exists between a
// successful compile and the link that consumes it.
type Stage struct {
	Kind     StageKind
	FilePath string
	Name     string

	source string
	id     uint32
}

// NewStage describes a stage whose source is read from filePath when the
// owning program compiles. The name is free-form and appears in compile
// diagnostics.
func NewStage(kind StageKind, filePath, name string) Stage {
	return Stage{Kind: kind, FilePath: filePath, Name: name}
}

// NewStageFromSource describes a stage with raw GLSL source text.
func NewStageFromSource(kind StageKind, source, name string) Stage {
	return Stage{Kind: kind, Name: name, source: source}
}

// loadSource returns the stage source, reading FilePath if no raw source
// was supplied.
func (s *Stage) loadSource() (string, error) {
	if s.source != "" {
		return s.source, nil
	}
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		return "", fmt.Errorf("reading shader source: %w", err)
	}
	return string(data), nil
}
