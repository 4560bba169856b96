package middleware

import (
	"net/http"

	chimid "github.com/go-chi/chi/v5/middleware"
)

// Recover 把 handler panic 轉成 500
func Recover(next http.Handler) http.Handler {
	return chimid.Recoverer(next)
}

// MaxBody 限制 request body 大小；下注序列通常只有數百行。
func MaxBody(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
