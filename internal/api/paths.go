package api

import (
	"fmt"
	"net/http"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wikipath/wikipath/internal/middleware"
	"github.com/wikipath/wikipath/internal/models"
	"github.com/wikipath/wikipath/internal/ws"
)

// PathHandler serves path query endpoints.
type PathHandler struct {
	svc     PathService
	hub     *ws.Hub
	origins []string
	log     *logrus.Logger
}

// NewPathHandler creates a PathHandler. hub serves the streaming endpoint,
// which accepts browser connections from the given CORS origins.
func NewPathHandler(svc PathService, hub *ws.Hub, origins []string, log *logrus.Logger) *PathHandler {
	return &PathHandler{svc: svc, hub: hub, origins: originHosts(origins), log: log}
}

// Single handles GET /api/v1/paths/single.
func (h *PathHandler) Single(c *gin.Context) {
	src, dst := c.Query("src"), c.Query("dst")

	algo, err := models.ParseAlgorithm(c.Query("algorithm"), models.AlgorithmBFS)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		return
	}

	path, err := h.svc.Single(c.Request.Context(), src, dst, algo)
	if err != nil {
		respondServiceError(c, h.log, err, "single path search")
		return
	}

	if path == nil {
		respondError(c, http.StatusNotFound, ErrCodeNoPath, fmt.Sprintf("no path from %q to %q", src, dst))
		return
	}

	c.JSON(http.StatusOK, path)
}

// Many handles GET /api/v1/paths/many.
func (h *PathHandler) Many(c *gin.Context) {
	dsts := c.QueryArray("dst")
	if len(dsts) > models.MaxDestinations {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError,
			fmt.Sprintf("at most %d destinations per query", models.MaxDestinations))

		return
	}

	res, err := h.svc.Many(c.Request.Context(), c.Query("src"), dsts)
	if err != nil {
		respondServiceError(c, h.log, err, "multi path search")
		return
	}

	c.JSON(http.StatusOK, res)
}

// Stream handles GET /api/v1/paths/stream by upgrading to a WebSocket and
// handing the connection to the stream hub.
func (h *PathHandler) Stream(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns:       h.origins,
		CompressionMode:      websocket.CompressionContextTakeover,
		CompressionThreshold: 512,
	})
	if err != nil {
		middleware.Logger(c, h.log).WithError(err).Debug("websocket accept failed")
		return
	}

	h.hub.Serve(c.Request.Context(), conn, middleware.Logger(c, h.log))
}
