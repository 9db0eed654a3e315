package glsl

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// These tests exercise the host-side lifecycle guards, caches, and error
// types. Paths that issue GPU calls need a live rendering context and are
// covered by the demo client, not by unit tests.

func TestStageKindGLEnum(t *testing.T) {
	tests := []struct {
		kind StageKind
		want uint32
	}{
		{VertexStage, gl.VERTEX_SHADER},
		{FragmentStage, gl.FRAGMENT_SHADER},
		{TessControlStage, gl.TESS_CONTROL_SHADER},
		{TessEvalStage, gl.TESS_EVALUATION_SHADER},
		{GeometryStage, gl.GEOMETRY_SHADER},
	}

	for _, tt := range tests {
		if got := tt.kind.GLEnum(); got != tt.want {
			t.Errorf("%s.GLEnum() = 0x%x, want 0x%x", tt.kind, got, tt.want)
		}
	}

	if got := StageKind(99).GLEnum(); got != 0 {
		t.Errorf("invalid kind GLEnum() = 0x%x, want 0", got)
	}
}

func TestStageKindString(t *testing.T) {
	tests := []struct {
		kind StageKind
		want string
	}{
		{VertexStage, "vertex"},
		{FragmentStage, "fragment"},
		{TessControlStage, "tess-control"},
		{TessEvalStage, "tess-eval"},
		{GeometryStage, "geometry"},
		{StageKind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("StageKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestStageLoadSourceFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "pass.vert")
	src := "#version 410 core\nvoid main() {}\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("failed to write shader file: %v", err)
	}

	st := NewStage(VertexStage, path, "pass")
	got, err := st.loadSource()
	if err != nil {
		t.Fatalf("loadSource failed: %v", err)
	}
	if got != src {
		t.Errorf("loadSource = %q, want %q", got, src)
	}
}

func TestStageLoadSourceRaw(t *testing.T) {
	st := NewStageFromSource(FragmentStage, "void main() {}", "raw")
	got, err := st.loadSource()
	if err != nil {
		t.Fatalf("loadSource failed: %v", err)
	}
	if got != "void main() {}" {
		t.Errorf("loadSource = %q", got)
	}
}

func TestStageLoadSourceMissingFile(t *testing.T) {
	st := NewStage(VertexStage, "/nonexistent/shader.vert", "missing")
	if _, err := st.loadSource(); err == nil {
		t.Error("expected error for missing shader file, got nil")
	}
}

func TestCompileShadersMissingFileReleasesNothing(t *testing.T) {
	p := NewProgram()
	err := p.CompileShaders([]Stage{
		NewStage(VertexStage, "/nonexistent/shader.vert", "missing"),
	})
	if err == nil {
		t.Fatal("expected error for missing shader file, got nil")
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("error should name the stage, got %q", err)
	}
	if p.State() != StateUninitialized {
		t.Errorf("expected uninitialized state after failed compile, got %s", p.State())
	}
	if p.ID() != 0 {
		t.Errorf("no program object may be retained, got handle %d", p.ID())
	}
}

func TestCompileWhileCompilingIsStateError(t *testing.T) {
	// A second CompileShaders while a compiled batch is pending would
	// overwrite p.stages and leak its shader objects; the guard must
	// reject it before touching the batch.
	p := NewProgram()
	p.state = StateCompiling
	p.stages = []Stage{{Kind: VertexStage, Name: "pending", id: 7}}

	err := p.CompileShaders([]Stage{NewStageFromSource(VertexStage, "src", "v")})

	var stateErr *StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError, got %T: %v", err, err)
	}
	if stateErr.Op != "CompileShaders" || stateErr.State != StateCompiling {
		t.Errorf("unexpected StateError contents: %+v", stateErr)
	}
	if len(p.stages) != 1 || p.stages[0].id != 7 {
		t.Error("pending stage batch must be left untouched")
	}
}

func TestCompileFailureKeepsPreviousLink(t *testing.T) {
	// A failed recompile of a linked program must not strand the live
	// program object in a state Use rejects.
	p := NewProgram()
	p.id = 9
	p.state = StateLinked

	err := p.CompileShaders([]Stage{
		NewStage(VertexStage, "/nonexistent/shader.vert", "missing"),
	})
	if err == nil {
		t.Fatal("expected error for missing shader file, got nil")
	}
	if p.State() != StateLinked {
		t.Errorf("expected linked state after failed recompile, got %s", p.State())
	}
	if p.ID() != 9 {
		t.Errorf("previous program handle must survive, got %d", p.ID())
	}
}

func TestCompileShadersEmpty(t *testing.T) {
	p := NewProgram()
	if err := p.CompileShaders(nil); err == nil {
		t.Error("expected error for empty stage set, got nil")
	}
}

func TestLinkBeforeCompileIsStateError(t *testing.T) {
	p := NewProgram()
	err := p.LinkShaders()

	var stateErr *StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError, got %T: %v", err, err)
	}
	if stateErr.Op != "LinkShaders" {
		t.Errorf("expected op LinkShaders, got %s", stateErr.Op)
	}
	if stateErr.State != StateUninitialized {
		t.Errorf("expected uninitialized state, got %s", stateErr.State)
	}
}

func TestUseBeforeLinkIsStateError(t *testing.T) {
	p := NewProgram()

	var stateErr *StateError
	if err := p.Use(nil); !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError from Use, got %T: %v", err, err)
	}
	if err := p.UnUse(nil); !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError from UnUse, got %T: %v", err, err)
	}
}

func TestRegisterBeforeLinkIsStateError(t *testing.T) {
	p := NewProgram()

	var stateErr *StateError
	if err := p.RegisterAttribute("aPos"); !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError from RegisterAttribute, got %T: %v", err, err)
	}
	if err := p.RegisterUniform("uModel"); !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError from RegisterUniform, got %T: %v", err, err)
	}
}

func TestUnregisteredLocationIsNotFound(t *testing.T) {
	p := NewProgram()

	loc, err := p.GetAttribLocation("aPos")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if notFound.Kind != "attribute" || notFound.Name != "aPos" {
		t.Errorf("unexpected NotFoundError contents: %+v", notFound)
	}
	if loc != -1 {
		t.Errorf("expected sentinel -1, got %d", loc)
	}

	loc, err = p.GetUniformLocation("uModel")
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if notFound.Kind != "uniform" {
		t.Errorf("expected uniform kind, got %s", notFound.Kind)
	}
	if loc != -1 {
		t.Errorf("expected sentinel -1, got %d", loc)
	}
}

func TestRegisteredSentinelIsNotAnError(t *testing.T) {
	// A registered name the driver eliminated caches -1 and returns no
	// error; only never-registered names do.
	p := NewProgram()
	p.attribs["aDead"] = -1
	p.uniforms["uDead"] = -1

	loc, err := p.GetAttribLocation("aDead")
	if err != nil {
		t.Fatalf("registered attribute lookup failed: %v", err)
	}
	if loc != -1 {
		t.Errorf("expected cached sentinel -1, got %d", loc)
	}

	loc, err = p.GetUniformLocation("uDead")
	if err != nil {
		t.Fatalf("registered uniform lookup failed: %v", err)
	}
	if loc != -1 {
		t.Errorf("expected cached sentinel -1, got %d", loc)
	}
}

func TestDisposeLifecycle(t *testing.T) {
	p := NewProgram()
	p.Dispose()

	if p.State() != StateDisposed {
		t.Errorf("expected disposed state, got %s", p.State())
	}

	var stateErr *StateError
	if err := p.CompileShaders([]Stage{NewStageFromSource(VertexStage, "src", "v")}); !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError compiling disposed program, got %T: %v", err, err)
	}
	if err := p.Use(nil); !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError using disposed program, got %T: %v", err, err)
	}

	// Dispose is idempotent.
	p.Dispose()
	if p.State() != StateDisposed {
		t.Errorf("expected disposed state after second dispose, got %s", p.State())
	}
}

func TestBlockUniformBindingIsDeferred(t *testing.T) {
	p := NewProgram()

	p.BlockUniformBinding(2, 1)
	p.BlockUniformBinding(2, 3) // latest request wins
	p.BlockUniformBinding(5, 0)

	if got := p.pendingBlockBindings[2]; got != 3 {
		t.Errorf("expected pending binding 3 for block 2, got %d", got)
	}
	if got := p.pendingBlockBindings[5]; got != 0 {
		t.Errorf("expected pending binding 0 for block 5, got %d", got)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateUninitialized, "uninitialized"},
		{StateCompiling, "compiling"},
		{StateLinked, "linked"},
		{StateInUse, "in-use"},
		{StateDisposed, "disposed"},
		{State(99), "invalid"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	compileErr := &CompileError{Stage: "water", Log: "0:12: syntax error"}
	if !strings.Contains(compileErr.Error(), "water") {
		t.Errorf("CompileError should name the stage: %q", compileErr.Error())
	}

	linkErr := &LinkError{Log: "unresolved symbol"}
	if !strings.Contains(linkErr.Error(), "unresolved symbol") {
		t.Errorf("LinkError should carry the diagnostic: %q", linkErr.Error())
	}

	stateErr := &StateError{Op: "Use", State: StateDisposed}
	if !strings.Contains(stateErr.Error(), "disposed") {
		t.Errorf("StateError should name the state: %q", stateErr.Error())
	}

	notFound := &NotFoundError{Kind: "uniform", Name: "uLight"}
	if !strings.Contains(notFound.Error(), "uLight") {
		t.Errorf("NotFoundError should name the symbol: %q", notFound.Error())
	}
}

func TestInvalidIndexSentinel(t *testing.T) {
	if InvalidIndex != 0xFFFFFFFF {
		t.Errorf("InvalidIndex = 0x%x, want 0xFFFFFFFF", InvalidIndex)
	}
}
