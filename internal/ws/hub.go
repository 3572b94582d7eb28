// Package ws serves streamed multi-destination path queries over WebSocket
// connections.
package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/wikipath/wikipath/internal/metrics"
	"github.com/wikipath/wikipath/internal/models"
)

// DefaultMaxSessions caps concurrent stream sessions per server.
const DefaultMaxSessions = 1000

// Sentinel errors returned when a session cannot be registered.
var (
	ErrTooManySessions = errors.New("too many stream sessions")
	ErrHubClosed       = errors.New("stream hub is shut down")
)

// Streamer runs one multi-destination search and emits a result per
// destination.
type Streamer interface {
	Stream(ctx context.Context, src string, dsts []string, emit func(models.DestinationPath) error) error
}

// Hub tracks active stream sessions so they can be counted and drained on
// shutdown.
type Hub struct {
	mu          sync.Mutex
	sessions    map[*session]struct{}
	maxSessions int
	closed      bool
	finder      Streamer
	log         *logrus.Logger
}

// NewHub creates a Hub serving searches through finder. maxSessions <= 0
// means DefaultMaxSessions.
func NewHub(finder Streamer, maxSessions int, log *logrus.Logger) *Hub {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}

	return &Hub{
		sessions:    make(map[*session]struct{}),
		maxSessions: maxSessions,
		finder:      finder,
		log:         log,
	}
}

func (h *Hub) register(s *session) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHubClosed
	}

	if len(h.sessions) >= h.maxSessions {
		return ErrTooManySessions
	}

	h.sessions[s] = struct{}{}
	metrics.StreamConnections.Set(float64(len(h.sessions)))

	return nil
}

func (h *Hub) unregister(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.sessions, s)
	metrics.StreamConnections.Set(float64(len(h.sessions)))
}

// SessionCount returns the number of active sessions.
func (h *Hub) SessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.sessions)
}

// Shutdown refuses new sessions and closes every active one with a going
// away status. It blocks until each close handshake finishes or times out.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	h.closed = true

	conns := make([]*websocket.Conn, 0, len(h.sessions))
	for s := range h.sessions {
		conns = append(conns, s.conn)
	}
	h.mu.Unlock()

	if len(conns) == 0 {
		return
	}

	h.log.WithField("sessions", len(conns)).Info("draining stream sessions")

	var wg sync.WaitGroup
	for _, conn := range conns {
		wg.Go(func() {
			conn.Close(websocket.StatusGoingAway, "server shutting down") //nolint:errcheck // best-effort
		})
	}
	wg.Wait()
}
