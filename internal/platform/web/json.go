package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes bounds request bodies; every request here is tiny.
const maxBodyBytes = 4 << 10

// decode reads a JSON body. An empty body yields the zero value.
func decode[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var payload T
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		return payload, fmt.Errorf("invalid request body: %w", err)
	}
	return payload, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
