package middleware

import "net/http"

// MaxRequestSize rejects request bodies larger than maxBytes. The limit is
// enforced lazily by the reader, so oversized payloads fail during JSON
// decoding rather than up front.
func MaxRequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
