package screen

import "fmt"

// Stack holds the registered screens in order and tracks the active one.
type Stack struct {
	screens []Screen
	current int
}

// NewStack creates an empty stack with no active screen.
func NewStack() *Stack {
	return &Stack{current: -1}
}

// Add registers a screen and returns its index.
func (s *Stack) Add(scr Screen) int {
	s.screens = append(s.screens, scr)
	return len(s.screens) - 1
}

// Set makes the screen at index active, exiting the previous one.
func (s *Stack) Set(index int) error {
	if index < 0 || index >= len(s.screens) {
		return fmt.Errorf("screen index %d out of range [0,%d)", index, len(s.screens))
	}

	if s.current >= 0 {
		if err := s.screens[s.current].OnExit(); err != nil {
			return err
		}
	}

	s.current = index
	return s.screens[s.current].OnEntry()
}

// Current returns the active screen, nil if none is set.
func (s *Stack) Current() Screen {
	if s.current < 0 {
		return nil
	}
	return s.screens[s.current]
}

// CurrentIndex returns the index of the active screen, -1 if none.
func (s *Stack) CurrentIndex() int {
	return s.current
}

// MoveNext activates the screen after the current one.
func (s *Stack) MoveNext() error {
	return s.Set(s.current + 1)
}

// MovePrevious activates the screen before the current one.
func (s *Stack) MovePrevious() error {
	return s.Set(s.current - 1)
}

// Update advances the active screen and applies any transition it
// requests. It returns false when the screen requests application exit.
func (s *Stack) Update(dt float64) (bool, error) {
	scr := s.Current()
	if scr == nil {
		return true, nil
	}

	if err := scr.Update(dt); err != nil {
		return false, err
	}

	switch scr.State() {
	case StateChangeNext:
		if err := s.MoveNext(); err != nil {
			return false, err
		}
	case StateChangePrevious:
		if err := s.MovePrevious(); err != nil {
			return false, err
		}
	case StateExit:
		return false, nil
	}

	return true, nil
}

// Draw renders the active screen.
func (s *Stack) Draw() error {
	if scr := s.Current(); scr != nil {
		return scr.Draw()
	}
	return nil
}
