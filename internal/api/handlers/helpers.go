package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// requireAdmin enforces the role header on write endpoints. It writes the
// 403 response itself and reports whether the caller may proceed.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("x-role") != "admin" {
		writeError(w, r, http.StatusForbidden, "admin role required")
		return false
	}
	return true
}
