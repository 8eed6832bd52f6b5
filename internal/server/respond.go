package server

import (
	"encoding/json"
	"net/http"
)

// The API speaks three envelope shapes, matching what the web client and
// CLI expect:
//
//	lists:    200 {"data": [...]}
//	writes:   200/201 {"success": true, "data": ...}
//	failures: 4xx/5xx {"error": "..."}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing to do but log would be noise here
		_ = err
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondData(w http.ResponseWriter, v any) {
	respondJSON(w, http.StatusOK, map[string]any{"data": v})
}

func respondSuccess(w http.ResponseWriter, status int, v any) {
	respondJSON(w, status, map[string]any{"success": true, "data": v})
}
