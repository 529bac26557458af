package apperr

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// envelope is the error body shape the client consumes as-is.
type envelope struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Detail     string `json:"error,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Write renders err as the error envelope. Anything that is not an *Error
// becomes a generic 500; server-side failures are logged with their cause,
// and diagnostic detail is attached only in development mode.
func Write(w http.ResponseWriter, err error, dev bool) {
	var ae *Error
	if !errors.As(err, &ae) {
		ae = Internal("Internal Server Error", err)
	}
	if ae.StatusCode >= http.StatusInternalServerError {
		log.Printf("internal error: %v", ae)
	}

	env := envelope{Success: false, Message: ae.Message, StatusCode: ae.StatusCode}
	if dev && ae.Err != nil {
		env.Detail = ae.Err.Error()
	}
	WriteJSON(w, ae.StatusCode, env)
}
