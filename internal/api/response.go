package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(log *zap.Logger, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Warn("error encoding response", zap.Error(err))
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(log *zap.Logger, w http.ResponseWriter, status int, message string) {
	jsonResponse(log, w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
