package usecase

import (
	"context"

	"github.com/pkg/browser"

	"auris-notifier/pkg/log"
)

// Browser opens targets in the system browser.
type Browser struct {
	logger log.Logger
	open   func(url string) error
}

func NewBrowser(logger log.Logger) *Browser {
	return &Browser{logger: logger, open: browser.OpenURL}
}

func (b *Browser) Navigate(ctx context.Context, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.logger.Infof(ctx, "navigate.usecase.Browser.Navigate: opening %s", target)
	return b.open(target)
}
