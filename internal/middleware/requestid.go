// AngelaMos | 2026
// requestid.go

package middleware

import (
	"context"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	RequestIDHeader = "X-Request-ID"
	maxRequestIDLen = 128
)

// RequestID wraps chi's request id middleware. Oversized inbound ids are
// dropped so chi mints a fresh one, and the id is echoed on the response.
func RequestID(next http.Handler) http.Handler {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(RequestIDHeader, chimw.GetReqID(r.Context()))
		next.ServeHTTP(w, r)
	})
	withID := chimw.RequestID(echo)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(r.Header.Get(RequestIDHeader)) > maxRequestIDLen {
			r.Header.Del(RequestIDHeader)
		}
		withID.ServeHTTP(w, r)
	})
}

func GetRequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}
