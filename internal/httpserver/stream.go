package httpserver

import (
	"net/http"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"

	"github.com/wadhifa/jobscout/internal/engine"
)

// handleSearchStream is POST /api/v1/search/stream — the SSE variant.
// Frames: one results event (a JSON array), zero or more token events,
// then a terminal done or error event.
func handleSearchStream(c *gin.Context) {
	req, ok := bindRequest(c)
	if !ok {
		return
	}

	// Disable buffering and caching so frames reach the client as produced.
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)

	flusher, _ := c.Writer.(http.Flusher)
	emit := func(f engine.Frame) {
		_ = sse.Encode(c.Writer, sse.Event{Event: string(f.Type), Data: f.Data})
		if flusher != nil {
			flusher.Flush()
		}
	}

	// Client disconnect cancels c.Request.Context(), which aborts the
	// in-flight summarization call.
	engine.RunSearchStream(c.Request.Context(), engine.SearchRequest{
		Query:     req.Q,
		Lang:      req.Lang,
		SessionID: req.SessionID,
	}, emit)
}
