package utils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// RespondError writes err as a structured JSON error response. AppError
// codes pick their own status; anything else is a 500 with a generic
// message so internals never leak to the caller.
func RespondError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondJSON(w, HTTPStatus(appErr.Code), map[string]string{"error": appErr.Message})
		return
	}
	log.Printf("Internal error: %v", err)
	RespondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}
