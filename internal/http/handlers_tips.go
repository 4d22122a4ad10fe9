package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"budgetapp/internal/core"
)

// handleExpandTip resolves an AI (or fallback) expansion for a tip id.
// Provider-side failures never surface as request failures: the service
// converts them to fallback expansions, so a non-2xx here means a
// request-shape or lookup problem.
func (s *Server) handleExpandTip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST, OPTIONS")
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	var req struct {
		TipID string `json:"tipId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing tipId")
		return
	}
	tipID := strings.TrimSpace(req.TipID)
	if err := core.ValidateTipID(tipID); err != nil {
		writeError(w, http.StatusBadRequest, "Missing tipId")
		return
	}

	res, err := s.expander.Expand(r.Context(), tipID)
	if err != nil {
		if errors.Is(err, core.ErrUnknownTip) {
			writeError(w, http.StatusNotFound, "Unknown tip id")
			return
		}
		slog.ErrorContext(r.Context(), "Expansion failed", "error", err, "tip_id", tipID)
		writeError(w, http.StatusInternalServerError, "Expansion failed")
		return
	}

	writeJSON(w, http.StatusOK, expandResponse{OK: true, Data: res.Expansion, Cached: res.Cached})
}

// handleStatus reports credential presence without leaking the key value.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET, OPTIONS")
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	keyPresent, model := s.expander.Status()
	writeJSON(w, http.StatusOK, statusResponse{OK: true, KeyPresent: keyPresent, Model: model})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET, OPTIONS")
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		OK:      true,
		Service: ServiceName,
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}
