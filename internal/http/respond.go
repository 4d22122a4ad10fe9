package http

import (
	"encoding/json"
	"net/http"

	"budgetapp/internal/core"
)

type expandResponse struct {
	OK     bool            `json:"ok"`
	Data   *core.Expansion `json:"data"`
	Cached bool            `json:"cached"`
}

type statusResponse struct {
	OK         bool   `json:"ok"`
	KeyPresent bool   `json:"keyPresent"`
	Model      string `json:"model"`
}

type healthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Time    string `json:"time"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{OK: false, Error: msg})
}
