package usecase

import (
	"context"

	"github.com/gen2brain/beeep"

	"auris-notifier/internal/alert"
	"auris-notifier/pkg/log"
)

// Desktop raises a desktop notification, then waits on the wrapped presenter
// for the acknowledgement.
type Desktop struct {
	logger log.Logger
	title  string
	ack    alert.Presenter
	notify func(title, message string) error
}

// NewDesktop creates a desktop presenter.
func NewDesktop(logger log.Logger, title string, ack alert.Presenter) *Desktop {
	return &Desktop{
		logger: logger,
		title:  title,
		ack:    ack,
		notify: func(title, message string) error {
			return beeep.Alert(title, message, "")
		},
	}
}

// Present never fails on the desktop notification itself; only the
// acknowledgement step can return an error.
func (d *Desktop) Present(ctx context.Context, content string) error {
	if err := d.notify(d.title, content); err != nil {
		d.logger.Warnf(ctx, "alert.usecase.Desktop.Present: desktop notification failed: %v", err)
	}
	return d.ack.Present(ctx, content)
}
