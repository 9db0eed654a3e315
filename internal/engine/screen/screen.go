// Package screen manages an ordered stack of screens and selects which
// one is active per frame.
package screen

// State signals what a screen wants the stack to do after a frame.
type State int

const (
	// StateNone marks a screen that has not entered yet.
	StateNone State = iota
	// StateRunning keeps the screen active.
	StateRunning
	// StateChangeNext requests a transition to the next screen.
	StateChangeNext
	// StateChangePrevious requests a transition to the previous screen.
	StateChangePrevious
	// StateExit requests application shutdown.
	StateExit
)

// Screen is one stage of the application (loading, menu, in-game). The
// stack calls OnEntry/OnExit around activation and Update/Draw per frame.
type Screen interface {
	// OnEntry is called when the screen becomes active.
	OnEntry() error

	// OnExit is called when the screen stops being active.
	OnExit() error

	// Update advances the screen by dt seconds.
	Update(dt float64) error

	// Draw renders the screen.
	Draw() error

	// State reports the transition the screen requests.
	State() State
}
