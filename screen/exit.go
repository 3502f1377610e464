package screen

import "time"

// ExitScreen shows a goodbye message while the program shuts down.
type ExitScreen struct {
	Base
}

func NewExit(display *Display, duration time.Duration) *ExitScreen {
	return &ExitScreen{Base: NewBase("exit", display, duration)}
}

func (s *ExitScreen) Render() error {
	if err := s.DisplayText([]string{"GOOD BYE"}); err != nil {
		return err
	}
	return s.Finish()
}
