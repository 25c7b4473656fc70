package alert

import "io"

// Presenter modes accepted by usecase.New.
const (
	ModeTerminal = "terminal"
	ModeDesktop  = "desktop"
)

// Options configures a presenter.
type Options struct {
	Mode   string
	Title  string
	Input  io.Reader
	Output io.Writer
}
