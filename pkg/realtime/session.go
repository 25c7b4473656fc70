package realtime

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// session serves one connection. The connect event is dispatched before the
// read pump starts, so it always precedes the connection's first message.
func (s *Socket) session(ctx context.Context, conn *websocket.Conn) error {
	ctx = s.logger.With(ctx, "session_id", uuid.NewString())

	conn.SetReadLimit(s.cfg.MaxMessageSize)
	if s.cfg.PingTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(s.cfg.PingTimeout))
		conn.SetPingHandler(s.pingHandler(conn))
	}

	s.setConn(conn)
	defer func() {
		s.setConn(nil)
		conn.Close()
	}()

	s.logger.Infof(ctx, "pkg.realtime.session: connected to %s", s.cfg.URL)
	s.dispatch(ctx, Message{Type: EventConnect, Timestamp: time.Now().UTC()})

	inbox := make(chan Message, s.cfg.InboxSize)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go s.readPump(ctx, conn, inbox, readErr, done)

	for {
		select {
		case <-ctx.Done():
			s.writeClose(conn, websocket.CloseNormalClosure, "client closing")
			return ctx.Err()

		case msg := <-inbox:
			s.dispatch(ctx, msg)

		case err := <-readErr:
			// Everything the pump queued before failing is still delivered,
			// unless the socket was closed meanwhile.
			for ctx.Err() == nil {
				select {
				case msg := <-inbox:
					s.dispatch(ctx, msg)
				default:
					return err
				}
			}
			return err
		}
	}
}

// readPump is the only reader of conn.
func (s *Socket) readPump(ctx context.Context, conn *websocket.Conn, inbox chan<- Message, readErr chan<- error, done <-chan struct{}) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warnf(ctx, "pkg.realtime.readPump: unexpected close: %v", err)
			}
			readErr <- err
			return
		}

		if s.cfg.PingTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(s.cfg.PingTimeout))
		}

		for _, line := range splitFrame(data) {
			msg, err := FromJSON(line)
			if err != nil {
				s.logger.Warnf(ctx, "pkg.realtime.readPump: dropping malformed message: %v", err)
				continue
			}
			select {
			case inbox <- *msg:
			case <-done:
				return
			}
		}
	}
}

func (s *Socket) pingHandler(conn *websocket.Conn) func(string) error {
	return func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(s.cfg.PingTimeout))
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(s.cfg.WriteWait))
		if err == nil || errors.Is(err, websocket.ErrCloseSent) {
			return nil
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil
		}
		return err
	}
}

func (s *Socket) writeClose(conn *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(s.cfg.WriteWait))
}

func (s *Socket) setConn(conn *websocket.Conn) {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
}
