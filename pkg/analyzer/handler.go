package analyzer

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/focusengine/dietitian-focus/pkg/defaults"
	"github.com/focusengine/dietitian-focus/pkg/errors"
	"github.com/focusengine/dietitian-focus/pkg/serializer"
	"github.com/focusengine/dietitian-focus/pkg/server"
)

const (
	// GenericFailureMessage is returned for every upstream failure.
	GenericFailureMessage = "Failed to generate a response"

	allowedMethods = "GET, OPTIONS"
)

// AnalyzeResponse is the success body of GET /api/analyze.
type AnalyzeResponse struct {
	Text string `json:"text"`
}

// Handler serves the analyze endpoint.
type Handler struct {
	svc     *Service
	timeout time.Duration
}

// NewHandler returns a Handler for svc. A zero timeout uses
// defaults.AnalyzeHandlerTimeout.
func NewHandler(svc *Service, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = defaults.AnalyzeHandlerTimeout
	}
	return &Handler{svc: svc, timeout: timeout}
}

// HandleAnalyze handles GET /api/analyze?food=<name>[&style=<style>].
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodOptions:
		w.Header().Set("Allow", allowedMethods)
		w.WriteHeader(http.StatusNoContent)
		return
	default:
		w.Header().Set("Allow", allowedMethods)
		server.WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	q := r.URL.Query()
	res, err := h.svc.Analyze(ctx, q.Get("food"), q.Get("style"))
	if err != nil {
		h.writeAnalyzeError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	if h.svc.CacheEnabled() {
		if res.Cached {
			w.Header().Set("X-Cache", "HIT")
		} else {
			w.Header().Set("X-Cache", "MISS")
		}
	}

	serializer.RespondJSON(w, http.StatusOK, AnalyzeResponse{Text: res.Text})
}

func (h *Handler) writeAnalyzeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := server.RequestIDFromContext(r.Context())

	switch code := errors.CodeOf(err); code {
	case errors.ErrCodeInvalidRequest:
		server.WriteErrorFromErr(w, r, err, "Invalid request", nil)
	case errors.ErrCodeConfiguration:
		slog.Error("analyze rejected: server misconfigured", "requestID", requestID, "error", err)
		server.WriteError(w, r, http.StatusInternalServerError, code,
			"Missing GEMINI_API_KEY", false, nil)
	case errors.ErrCodeTimeout:
		slog.Error("analyze timed out", "requestID", requestID, "error", err)
		server.WriteError(w, r, http.StatusGatewayTimeout, code,
			GenericFailureMessage, true, nil)
	default:
		slog.Error("analyze failed", "requestID", requestID, "code", code, "error", err)
		server.WriteError(w, r, http.StatusBadGateway, errors.ErrCodeUpstream,
			GenericFailureMessage, true, nil)
	}
}
