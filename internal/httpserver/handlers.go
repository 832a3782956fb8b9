package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/wadhifa/jobscout/internal/engine"
)

// searchRequest is the body accepted by both endpoints.
type searchRequest struct {
	Q         string `json:"q" binding:"required,min=2"`
	Lang      string `json:"lang" binding:"omitempty,oneof=en ar"`
	SessionID string `json:"sessionId" binding:"omitempty,min=5,max=128"`
}

// searchResponse is the blocking endpoint's success shape.
type searchResponse struct {
	OK        bool               `json:"ok"`
	Lang      string             `json:"lang"`
	Results   []engine.JobResult `json:"results"`
	Answer    *string            `json:"answer"`
	FromCache bool               `json:"fromCache,omitempty"`
}

// handleSearch is POST /api/v1/search — the blocking variant.
func handleSearch(c *gin.Context) {
	req, ok := bindRequest(c)
	if !ok {
		return
	}

	out, err := engine.RunSearch(c.Request.Context(), engine.SearchRequest{
		Query:     req.Q,
		Lang:      req.Lang,
		SessionID: req.SessionID,
	})
	if err != nil {
		slog.Error("search failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}

	resp := searchResponse{
		OK:        true,
		Lang:      engine.NormLang(req.Lang),
		Results:   out.Results,
		FromCache: out.FromCache,
	}
	if resp.Results == nil {
		resp.Results = []engine.JobResult{}
	}
	if out.HasAnswer {
		resp.Answer = &out.Answer
	}
	c.JSON(http.StatusOK, resp)
}

// bindRequest validates the body, replying 400 with field detail on error.
func bindRequest(c *gin.Context) (searchRequest, bool) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request", "fields": fieldErrors(err)})
		return req, false
	}
	return req, true
}

// fieldErrors flattens validator output into field → constraint pairs.
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = fe.Tag()
		}
		return out
	}
	out["body"] = "malformed JSON"
	return out
}
