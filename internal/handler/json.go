package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

type errorEntry struct {
	Message string `json:"message"`
}

// writeError sends a GraphQL-shaped error body, {"errors":[{"message":...}]},
// for failures that happen before a document is executed.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string][]errorEntry{
		"errors": {{Message: message}},
	})
}
