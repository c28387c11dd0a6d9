package web

import (
	"encoding/json"
	"net/http"
)

// Envelope is the single response shape for every endpoint.
type Envelope struct {
	Success    bool     `json:"success"`
	StatusCode int      `json:"statusCode"`
	Module     string   `json:"module,omitempty"`
	Message    string   `json:"message,omitempty"`
	Data       any      `json:"data,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

// Respond writes a success envelope with the given status.
func Respond(w http.ResponseWriter, status int, module, message string, data any) {
	writeJSON(w, status, Envelope{
		Success:    status < 400,
		StatusCode: status,
		Module:     module,
		Message:    message,
		Data:       data,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
