package usecase

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"auris-notifier/internal/alert"
)

// Terminal prints the content and waits for a line on its input.
type Terminal struct {
	in     io.Reader
	out    io.Writer
	prompt string
	quiet  time.Duration

	once  sync.Once
	lines chan struct{}
	eof   chan struct{}
}

// NewTerminal creates a terminal presenter.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:     in,
		out:    out,
		prompt: defaultPrompt,
		quiet:  drainQuiet,
		lines:  make(chan struct{}),
		eof:    make(chan struct{}),
	}
}

// Present writes content followed by the prompt and returns once a line is
// read. Lines typed while nothing was on screen are discarded first, until
// the input has been quiet for a short moment.
func (t *Terminal) Present(ctx context.Context, content string) error {
	t.once.Do(func() { go t.scan() })

	t.drain()

	if _, err := fmt.Fprintf(t.out, "\n%s\n%s ", content, t.prompt); err != nil {
		return fmt.Errorf("write alert: %w", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.lines:
		return nil
	case <-t.eof:
		return alert.ErrInputClosed
	}
}

// scan is the only reader of t.in.
func (t *Terminal) scan() {
	sc := bufio.NewScanner(t.in)
	for sc.Scan() {
		t.lines <- struct{}{}
	}
	close(t.eof)
}

// drain discards lines until none arrives for t.quiet.
func (t *Terminal) drain() {
	timer := time.NewTimer(t.quiet)
	defer timer.Stop()
	for {
		select {
		case <-t.lines:
			timer.Reset(t.quiet)
		case <-t.eof:
			return
		case <-timer.C:
			return
		}
	}
}
