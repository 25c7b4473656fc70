package realtime

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gorilla/websocket"

	"auris-notifier/pkg/log"
)

// Socket is an event-named WebSocket client. It owns at most one live
// connection, redials it according to Config, and dispatches every event
// (synthetic or received) on a single loop in arrival order.
type Socket struct {
	cfg    Config
	dialer *websocket.Dialer
	logger log.Logger

	handlers map[string]Handler
	onFault  FaultHandler
	hmu      sync.RWMutex

	// Live connection, guarded by mu. Writes also hold mu.
	conn *websocket.Conn
	mu   sync.Mutex

	running atomic.Bool
	closed  bool
	cancel  context.CancelFunc
}

// Option configures a Socket.
type Option func(*Socket)

// WithDialer replaces the default dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(s *Socket) { s.dialer = d }
}

// WithFaultHandler registers a callback for handler errors.
func WithFaultHandler(fn FaultHandler) Option {
	return func(s *Socket) { s.onFault = fn }
}

// New creates a new Socket. Nothing is dialed until Run.
func New(cfg Config, logger log.Logger, opts ...Option) *Socket {
	cfg.applyDefaults()
	s := &Socket{
		cfg:      cfg,
		logger:   logger,
		handlers: make(map[string]Handler),
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: cfg.DialTimeout,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// On binds h to event, replacing any previous binding.
func (s *Socket) On(event string, h Handler) {
	s.hmu.Lock()
	defer s.hmu.Unlock()
	s.handlers[event] = h
}

// OnFault replaces the fault handler.
func (s *Socket) OnFault(fn FaultHandler) {
	s.hmu.Lock()
	defer s.hmu.Unlock()
	s.onFault = fn
}

// Emit sends an event on the live connection.
func (s *Socket) Emit(ctx context.Context, event string, payload any) error {
	msg, err := NewMessage(event, payload)
	if err != nil {
		return err
	}
	data, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return ErrNotConnected
	}

	deadline := time.Now().Add(s.cfg.WriteWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := s.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("write %s: %w", event, err)
	}

	s.logger.Debugf(ctx, "pkg.realtime.Emit: sent %s", event)
	return nil
}

// Connected reports whether a connection is currently live.
func (s *Socket) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

// Run dials the server and processes events until ctx is done, Close is
// called, or reconnection gives up. A graceful stop returns nil.
func (s *Socket) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.cancel = cancel
	s.mu.Unlock()

	bo := s.newBackOff()
	failures := 0

	for {
		conn, err := s.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			failures++
			s.logger.Warnf(ctx, "pkg.realtime.Run: dial %s failed (attempt %d): %v", s.cfg.URL, failures, err)

			if !s.cfg.Reconnect {
				return err
			}
			if s.cfg.MaxAttempts > 0 && failures >= s.cfg.MaxAttempts {
				return fmt.Errorf("%w after %d attempts: %v", ErrReconnectExhausted, failures, err)
			}
			if !sleep(ctx, bo.NextBackOff()) {
				return nil
			}
			continue
		}

		failures = 0
		bo.Reset()

		err = s.session(ctx, conn)
		if ctx.Err() != nil {
			return nil
		}

		s.logger.Warnf(ctx, "pkg.realtime.Run: connection lost: %v", err)
		s.dispatch(ctx, disconnectMessage(err))

		if !s.cfg.Reconnect {
			return fmt.Errorf("%w: %v", ErrConnectionLost, err)
		}
		if !sleep(ctx, bo.NextBackOff()) {
			return nil
		}
	}
}

// Close stops Run and closes the live connection, if any.
func (s *Socket) Close() error {
	s.mu.Lock()
	s.closed = true
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	return nil
}

func (s *Socket) dial(ctx context.Context) (*websocket.Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, s.cfg.DialTimeout)
	defer cancel()

	conn, resp, err := s.dialer.DialContext(dialCtx, s.cfg.URL, s.cfg.Header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("%w (status %d)", err, resp.StatusCode)
		}
		return nil, err
	}
	return conn, nil
}

func (s *Socket) newBackOff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.cfg.InitialInterval
	bo.MaxInterval = s.cfg.MaxInterval
	bo.Reset()
	return bo
}

// dispatch runs the handler for msg. Once ctx is done, queued events are
// discarded: a handler that closes the socket is the last one to run.
func (s *Socket) dispatch(ctx context.Context, msg Message) {
	if ctx.Err() != nil {
		s.logger.Debugf(ctx, "pkg.realtime.dispatch: discarding %s after close", msg.Type)
		return
	}

	s.hmu.RLock()
	h, ok := s.handlers[msg.Type]
	onFault := s.onFault
	s.hmu.RUnlock()

	if !ok {
		s.logger.Debugf(ctx, "pkg.realtime.dispatch: no handler for %q", msg.Type)
		return
	}

	if err := h(ctx, msg); err != nil {
		s.logger.Errorf(ctx, "pkg.realtime.dispatch: %s handler fault: %v", msg.Type, err)
		if onFault != nil {
			onFault(ctx, msg.Type, err)
		}
	}
}

func disconnectMessage(cause error) Message {
	reason := "unknown"
	if cause != nil {
		reason = cause.Error()
	}
	msg, _ := NewMessage(EventDisconnect, DisconnectPayload{Reason: reason})
	return *msg
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
