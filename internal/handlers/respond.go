// Package handlers implements the JSON API: authentication, catalog CRUD,
// media upload and the admin dashboard endpoints. Every response uses the
// same envelope: {"success": bool, "data": ..., "error": "..."}.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// response is the JSON envelope shared by all API endpoints. LocalOnly is
// set on writes that were applied to the local cache but could not be
// propagated upstream yet.
type response struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	LocalOnly bool   `json:"localOnly,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Warn("response encode failed", "error", err)
	}
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, response{Success: true, Data: data})
}

// writeDataLocal marks a successful write that has not reached the
// upstream tiers; clients surface this as "saved locally".
func writeDataLocal(w http.ResponseWriter, data any, localOnly bool) {
	writeJSON(w, http.StatusOK, response{Success: true, Data: data, LocalOnly: localOnly})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, response{Success: false, Error: msg})
}
