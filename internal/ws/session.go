package ws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/sirupsen/logrus"

	"github.com/wikipath/wikipath/internal/httputil"
	"github.com/wikipath/wikipath/internal/models"
)

const (
	writeTimeout   = 10 * time.Second
	requestTimeout = 10 * time.Second
	readLimit      = 64 << 10
	pingInterval   = 30 * time.Second
	pingTimeout    = 10 * time.Second
	maxMissedPongs = 2
)

// session is one accepted stream connection.
type session struct {
	conn *websocket.Conn
	log  *logrus.Entry
}

// Serve runs one stream session on conn: it reads a StreamRequest, emits a
// frame per destination, then a DoneMsg or ErrorMsg, and closes. It returns
// once the session is over.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, log *logrus.Entry) {
	defer conn.CloseNow() //nolint:errcheck // best-effort close on teardown

	s := &session{conn: conn, log: log}

	if err := h.register(s); err != nil {
		log.WithError(err).Warn("refusing stream session")
		conn.Close(websocket.StatusTryAgainLater, err.Error()) //nolint:errcheck // best-effort

		return
	}
	defer h.unregister(s)

	conn.SetReadLimit(readLimit)

	var req StreamRequest

	readCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	err := wsjson.Read(readCtx, conn, &req)
	cancel()

	if err != nil {
		log.WithError(err).Debug("reading stream request")
		conn.Close(websocket.StatusPolicyViolation, "expected a stream request") //nolint:errcheck // best-effort

		return
	}

	// Nothing else is read from the client. The background reader answers
	// pings and cancels ctx when the client goes away.
	ctx = conn.CloseRead(ctx)

	go s.keepAlive(ctx)

	start := time.Now()
	frames := 0

	if n := len(req.Dsts); n > models.MaxDestinations {
		err = fmt.Errorf("%d destinations, at most %d: %w", n, models.MaxDestinations, models.ErrTooManyDestinations)
	} else {
		err = h.finder.Stream(ctx, req.Src, req.Dsts, func(dp models.DestinationPath) error {
			frames++
			return s.write(ctx, dp)
		})
	}

	fields := logrus.Fields{
		"src":          req.Src,
		"destinations": len(req.Dsts),
		"frames":       frames,
		"duration":     time.Since(start).String(),
	}

	switch {
	case err == nil:
		if err := s.write(ctx, DoneMsg{Done: true}); err != nil {
			log.WithError(err).Debug("writing done frame")
			return
		}
	case errors.Is(err, context.Canceled) && ctx.Err() != nil:
		log.WithFields(fields).Debug("stream client went away")
		return
	default:
		_, code, msg := httputil.Classify(err)
		if code == httputil.CodeInternal {
			log.WithError(err).WithFields(fields).Error("stream search failed")
		}

		if err := s.write(ctx, ErrorMsg{Code: code, Message: msg}); err != nil {
			log.WithError(err).Debug("writing error frame")
			return
		}
	}

	log.WithFields(fields).Debug("stream finished")
	conn.Close(websocket.StatusNormalClosure, "") //nolint:errcheck // best-effort
}

func (s *session) write(ctx context.Context, v any) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	return wsjson.Write(ctx, s.conn, v)
}

// keepAlive pings the client until ctx ends and drops the connection after
// consecutive missed pongs.
func (s *session) keepAlive(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	missed := 0

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := s.conn.Ping(pingCtx)
			cancel()

			if err == nil {
				missed = 0
				continue
			}

			missed++
			if missed >= maxMissedPongs {
				s.log.Debug("closing stream: missed pongs")
				s.conn.CloseNow() //nolint:errcheck // best-effort

				return
			}
		}
	}
}
