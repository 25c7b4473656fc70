package usecase

import (
	"fmt"
	"io"
	"os"

	"auris-notifier/internal/navigate"
	"auris-notifier/pkg/log"
)

// New builds the navigator named by mode. out is used by the print mode and
// defaults to stdout.
func New(logger log.Logger, mode string, out io.Writer) (navigate.Navigator, error) {
	if out == nil {
		out = os.Stdout
	}
	switch mode {
	case "", navigate.ModeBrowser:
		return NewBrowser(logger), nil
	case navigate.ModePrint:
		return NewPrinter(out), nil
	default:
		return nil, fmt.Errorf("%w: %q", navigate.ErrUnknownMode, mode)
	}
}
