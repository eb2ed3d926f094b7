// Package respond writes JSON responses.
package respond

import (
	"net/http"

	"github.com/goccy/go-json"

	"bookreco-backend/models/recommend"
)

// JSON writes data as the response body with the given status.
func JSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// Error writes {"error": message}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, recommend.ErrorResponse{Error: message})
}
