package middleware

import (
	"cfb-trends-go/logging"
	"encoding/json"
	"net/http"
	"time"
)

// Meta accompanies every JSON response
type Meta struct {
	ProcessingTimeMs int64     `json:"processingTimeMs"`
	Timestamp        time.Time `json:"timestamp"`
	RequestID        string    `json:"requestId,omitempty"`
}

// Envelope is the JSON body shape for every API response
type Envelope struct {
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
	Meta  Meta        `json:"meta"`
}

func newMeta(r *http.Request, start time.Time) Meta {
	return Meta{
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Timestamp:        time.Now().UTC(),
		RequestID:        GetRequestID(r.Context()),
	}
}

// WriteJSON writes data in the response envelope
func WriteJSON(w http.ResponseWriter, r *http.Request, start time.Time, status int, data interface{}) {
	writeEnvelope(w, status, Envelope{Data: data, Meta: newMeta(r, start)})
}

// WriteError writes an error message in the response envelope
func WriteError(w http.ResponseWriter, r *http.Request, start time.Time, status int, message string) {
	writeEnvelope(w, status, Envelope{Error: message, Meta: newMeta(r, start)})
}

func writeEnvelope(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Errorf("Failed to encode response: %v", err)
	}
}
