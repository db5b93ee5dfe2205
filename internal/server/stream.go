package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Clients only send control frames
	maxMessageSize = 512
)

// handleStream upgrades to a websocket and pushes the viewer's snapshot
// now and after every change to the room, until the room is swept or the
// client goes away.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	roomID, err := required(r, "roomId")
	if err != nil {
		s.fail(w, err)
		return
	}
	viewer := r.FormValue("viewer")
	if _, err := s.manager.Snapshot(roomID, viewer); err != nil {
		s.fail(w, err)
		return
	}

	// Subscribe before the first snapshot so no change falls in between.
	changes, unsubscribe := s.manager.Subscribe(roomID)
	defer unsubscribe()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()
	logger := s.logger.With("room", roomID, "viewer", viewer)
	logger.Debug("stream opened")

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(maxMessageSize)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	push := func() bool {
		v, err := s.manager.Snapshot(roomID, viewer)
		if err != nil {
			return false
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(envelope{OK: true, Detail: v}); err != nil {
			logger.Debug("stream write failed", "err", err)
			return false
		}
		return true
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	if !push() {
		return
	}
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "room closed"))
				return
			}
			if !push() {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			logger.Debug("stream closed by client")
			return
		case <-r.Context().Done():
			return
		}
	}
}
