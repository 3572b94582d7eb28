package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// PathService runs shortest click-path queries.
type PathService struct {
	c *Client
}

// Single returns a shortest path from src to dst. algo may be empty for the
// server default. An unreachable dst yields an error for which IsNoPath
// reports true.
func (s *PathService) Single(ctx context.Context, src, dst, algo string) (*ArticlePath, error) {
	params := url.Values{"src": {src}, "dst": {dst}}
	if algo != "" {
		params.Set("algorithm", algo)
	}

	var resp ArticlePath
	if err := s.c.get(ctx, "/api/v1/paths/single", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Many returns a shortest path from src to each of dsts.
func (s *PathService) Many(ctx context.Context, src string, dsts []string) (*ManyArticlePaths, error) {
	params := url.Values{"src": {src}, "dst": dsts}

	var resp ManyArticlePaths
	if err := s.c.get(ctx, "/api/v1/paths/many", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// streamFrame is any frame the server sends on a stream.
type streamFrame struct {
	DestinationPath
	Done    bool   `json:"done"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrStreamIncomplete means the server closed a stream before its final frame.
var ErrStreamIncomplete = errors.New("stream ended before completion")

// Stream runs a multi-destination query over a WebSocket and calls fn with
// each destination's result as the server produces it. An error from fn
// stops the stream and is returned.
func (s *PathService) Stream(ctx context.Context, src string, dsts []string, fn func(DestinationPath) error) error {
	conn, _, err := websocket.Dial(ctx, s.c.wsURL("/api/v1/paths/stream"), &websocket.DialOptions{
		HTTPHeader: s.c.authHeader(),
	})
	if err != nil {
		return fmt.Errorf("dial stream: %w", err)
	}
	defer conn.CloseNow() //nolint:errcheck // best-effort close on teardown

	// Paths through large graphs can be long; lift the default 32 KiB cap.
	conn.SetReadLimit(4 << 20)

	if err := wsjson.Write(ctx, conn, map[string]any{"src": src, "dsts": dsts}); err != nil {
		return fmt.Errorf("send stream request: %w", err)
	}

	for {
		var raw json.RawMessage
		if err := wsjson.Read(ctx, conn, &raw); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				return ErrStreamIncomplete
			}
			return fmt.Errorf("read stream: %w", err)
		}

		var f streamFrame
		if err := json.Unmarshal(raw, &f); err != nil {
			return fmt.Errorf("decode stream frame: %w", err)
		}

		switch {
		case f.Done:
			conn.Close(websocket.StatusNormalClosure, "") //nolint:errcheck // best-effort
			return nil
		case f.Code != "":
			return &APIError{Code: f.Code, Message: f.Message}
		}

		if err := fn(f.DestinationPath); err != nil {
			return err
		}
	}
}
