package response

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the error envelope every endpoint shares. Success payloads
// are written as-is: each endpoint defines its own wire shape.
type ErrorBody struct {
	Status string `json:"status"`
	Detail any    `json:"detail"`
}

// JSON sends a JSON response with the given payload
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// Error sends an error response in the shared envelope
func Error(w http.ResponseWriter, status int, detail any) {
	JSON(w, status, ErrorBody{Status: "error", Detail: detail})
}

// OK sends a 200 OK response with payload
func OK(w http.ResponseWriter, payload any) {
	JSON(w, http.StatusOK, payload)
}

// NoContent sends a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(w http.ResponseWriter, detail any) {
	Error(w, http.StatusBadRequest, detail)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(w http.ResponseWriter, detail any) {
	Error(w, http.StatusUnauthorized, detail)
}

// NotFound sends a 404 Not Found response
func NotFound(w http.ResponseWriter, detail any) {
	Error(w, http.StatusNotFound, detail)
}

// InternalError sends a 500 Internal Server Error response
func InternalError(w http.ResponseWriter, detail any) {
	Error(w, http.StatusInternalServerError, detail)
}
