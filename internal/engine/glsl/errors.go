package glsl

import "fmt"

// CompileError reports a failed shader stage compilation. Log carries the
// driver's compiler diagnostic verbatim.
type CompileError struct {
	Stage string
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling %s shader: %s", e.Stage, e.Log)
}

// LinkError reports a failed program link. Log carries the driver's
// linker diagnostic verbatim.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("linking shader program: %s", e.Log)
}

// StateError reports an operation invoked out of lifecycle order, such as
// linking before compiling or using a disposed program.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s called on %s program", e.Op, e.State)
}

// NotFoundError reports a location query for a name that was never
// registered. Registered names that the driver eliminated resolve to the
// -1 sentinel instead and do not produce this error.
type NotFoundError struct {
	Kind string // "attribute" or "uniform"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not registered", e.Kind, e.Name)
}
