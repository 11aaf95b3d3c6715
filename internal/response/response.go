// Package response is the single point where outcomes are serialized into the
// uniform JSON envelope {statusCode, message, data}. Nothing else in the
// service writes JSON to a client, redirect flows excepted.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/inkstream/inkstream-go/internal/apperr"
)

// Envelope is the uniform response body. statusCode carries the application
// error code, not the HTTP status; zero means success. data is always present
// and null when there is nothing to return.
type Envelope struct {
	StatusCode apperr.Code `json:"statusCode"`
	Message    string      `json:"message"`
	Data       any         `json:"data"`
}

// Write serializes one envelope with the given HTTP status.
func Write(w http.ResponseWriter, httpCode int, code apperr.Code, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpCode)
	if err := json.NewEncoder(w).Encode(Envelope{StatusCode: code, Message: message, Data: data}); err != nil {
		log.Err(err).Msg("Failed to encode response envelope")
	}
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, message string, data any) {
	if message == "" {
		message = "success"
	}
	Write(w, http.StatusOK, apperr.CodeOK, message, data)
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, message string, data any) {
	Write(w, http.StatusCreated, apperr.CodeOK, message, data)
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes the envelope for a failure. Typed errors keep their status,
// code and message; anything else is reported as a generic internal failure.
func Error(w http.ResponseWriter, err error) {
	appErr := apperr.From(err)
	Write(w, appErr.HTTPCode, appErr.Code, appErr.Message, appErr.Data)
}
