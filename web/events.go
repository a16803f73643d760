// ABOUTME: Websocket change feed for the demo workspace
// ABOUTME: Streams the current snapshot then every later commit in revision order

package web

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/harperreed/growthdesk/demo"
)

const (
	eventBuffer  = 32
	writeTimeout = 5 * time.Second
)

// handleEvents streams every committed store change as JSON over a websocket.
// The first frame is the current snapshot with op "snapshot".
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	changes := make(chan demo.Change, eventBuffer)
	overflow := make(chan struct{})
	unsubscribe := s.store.Subscribe(func(c demo.Change) {
		select {
		case changes <- c:
		default:
			// Slow reader; drop the connection rather than block commits.
			select {
			case <-overflow:
			default:
				close(overflow)
			}
		}
	})
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(c demo.Change) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		return conn.WriteJSON(c)
	}
	st, lastSent := s.store.Current()
	if err := send(demo.Change{Op: "snapshot", Rev: lastSent, State: st}); err != nil {
		return
	}

	for {
		select {
		case c := <-changes:
			// Queued before the snapshot was read.
			if c.Rev <= lastSent {
				continue
			}
			lastSent = c.Rev
			if err := send(c); err != nil {
				s.logger.Debug("event write failed", "err", err)
				return
			}
		case <-overflow:
			s.logger.Warn("dropping slow event subscriber")
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "too slow"),
				time.Now().Add(time.Second))
			return
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
