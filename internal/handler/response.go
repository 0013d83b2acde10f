package handler

import (
	"encoding/json"
	"net/http"
)

// errorBody is the envelope every non-2xx response carries
type errorBody struct {
	Error errorInfo `json:"error"`
}

// errorInfo pairs a machine-readable code with a human-readable message
type errorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON writes data as a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	// The status line is already on the wire; an encode failure here can
	// only truncate the body
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes the standard error envelope
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorBody{
		Error: errorInfo{
			Code:    code,
			Message: message,
		},
	})
}

// respondSuccess writes data with 200 OK
func respondSuccess(w http.ResponseWriter, data any) {
	respondJSON(w, http.StatusOK, data)
}

// respondCreated writes data with 201 Created
func respondCreated(w http.ResponseWriter, data any) {
	respondJSON(w, http.StatusCreated, data)
}
