package handlers

import (
	"encoding/json"
	"net/http"
)

// StatusError/StatusSuccess are the structured status sentinels in every
// JSON response this service originates (relayed DART bodies keep their own
// numeric status codes).
const (
	StatusError   = "error"
	StatusSuccess = "success"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"status":  StatusError,
		"message": message,
	})
}
