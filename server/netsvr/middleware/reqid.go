package middleware

import (
	"net/http"

	chimid "github.com/go-chi/chi/v5/middleware"
)

// RequestID 為每個 request 指派 id，並寫回 X-Request-Id 標頭。
func RequestID(next http.Handler) http.Handler {
	return chimid.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(chimid.RequestIDHeader, GetReqId(r))
		next.ServeHTTP(w, r)
	}))
}

func GetReqId(r *http.Request) string {
	return chimid.GetReqID(r.Context())
}
