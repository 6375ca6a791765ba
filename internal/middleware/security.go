// internal/middleware/security.go
//
// Response-header middleware for the operational endpoints.
//
// The dashboard core only serves /healthz and /metrics.  Neither should
// be framed, sniffed, or cached by an intermediary:
//
//   • X-Content-Type-Options  –  nosniff
//   • X-Frame-Options         –  DENY
//   • Cache-Control           –  no-store
//   • Referrer-Policy         –  no-referrer
//
// Notes
// -----
// • Headers are set *before* next.ServeHTTP; a handler may still overwrite
//   any of them.

package middleware

import "net/http"

// Security sets the default response headers for every request.
func Security(next http.Handler) http.Handler {
	defaults := [...][2]string{
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
		{"Cache-Control", "no-store"},
		{"Referrer-Policy", "no-referrer"},
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for _, kv := range defaults {
			h.Set(kv[0], kv[1])
		}
		next.ServeHTTP(w, r)
	})
}
