package middleware

import (
	"crypto/subtle"
	"net/http"
)

// ExportKeyHeader carries the researcher key for the CSV export.
const ExportKeyHeader = "X-Export-Key"

// NewAPIKeyHandler returns a middleware that requires header to equal key.
// An empty key disables the check. Mismatches get a 401 envelope.
func NewAPIKeyHandler(header, key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		want := []byte(key)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get(header))
			if subtle.ConstantTimeCompare(got, want) != 1 {
				reject(w, r, http.StatusUnauthorized, "unauthorized", "missing or invalid "+header)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
