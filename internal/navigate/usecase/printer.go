package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Printer writes the target instead of opening it, for headless runs.
type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) Navigate(ctx context.Context, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := fmt.Fprintf(p.out, "redirect: %s\n", target)
	return err
}
