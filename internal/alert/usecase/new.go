package usecase

import (
	"fmt"
	"os"
	"time"

	"auris-notifier/internal/alert"
	"auris-notifier/pkg/log"
)

const (
	defaultTitle  = "Notification"
	defaultPrompt = "Press Enter to continue..."
	drainQuiet    = 50 * time.Millisecond
)

// New builds the presenter named by opts.Mode. Input and Output default to
// the process's stdin and stdout.
func New(logger log.Logger, opts alert.Options) (alert.Presenter, error) {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Title == "" {
		opts.Title = defaultTitle
	}

	term := NewTerminal(opts.Input, opts.Output)

	switch opts.Mode {
	case "", alert.ModeTerminal:
		return term, nil
	case alert.ModeDesktop:
		return NewDesktop(logger, opts.Title, term), nil
	default:
		return nil, fmt.Errorf("%w: %q", alert.ErrUnknownMode, opts.Mode)
	}
}
