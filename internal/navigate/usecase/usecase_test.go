package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auris-notifier/internal/navigate"
	"auris-notifier/pkg/log"
)

func TestPrinterNavigate(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)

	require.NoError(t, p.Navigate(context.Background(), "https://example.com/downloads"))
	assert.Equal(t, "redirect: https://example.com/downloads\n", out.String())
}

func TestBrowserNavigate(t *testing.T) {
	b := NewBrowser(log.NewNop())
	var opened string
	b.open = func(url string) error {
		opened = url
		return nil
	}

	require.NoError(t, b.Navigate(context.Background(), "https://example.com"))
	assert.Equal(t, "https://example.com", opened)

	boom := errors.New("no browser")
	b.open = func(string) error { return boom }
	assert.ErrorIs(t, b.Navigate(context.Background(), "https://example.com"), boom)
}

func TestNavigateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, NewPrinter(&bytes.Buffer{}).Navigate(ctx, "https://x.io"), context.Canceled)
}

func TestNewModes(t *testing.T) {
	n, err := New(log.NewNop(), navigate.ModePrint, nil)
	require.NoError(t, err)
	assert.IsType(t, &Printer{}, n)

	n, err = New(log.NewNop(), "", nil)
	require.NoError(t, err)
	assert.IsType(t, &Browser{}, n)

	_, err = New(log.NewNop(), "teleport", nil)
	assert.ErrorIs(t, err, navigate.ErrUnknownMode)
}
