// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package httpapi wires the election facade and its collaborators onto
// HTTP endpoints, following the response/error-writing conventions of the
// consensus engine's api package.
package httpapi

import (
	"encoding/json"
	"net/http"
)

// errorBody is the wire shape used for every error response:
// {"error": "<message>"}.
type errorBody struct {
	Error string `json:"error"`
}

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the {"error": msg} shape at status.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writePEM writes a PEM-encoded public key with application/x-pem-file.
func writePEM(w http.ResponseWriter, pem []byte) {
	w.Header().Set("Content-Type", "application/x-pem-file")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pem)
}
