package middleware

import (
	"net/http"

	chimid "github.com/go-chi/chi/v5/middleware"
)

// RequestID 以 chi 產生請求編號，並回寫到回應 header 方便對照 access log
func RequestID(next http.Handler) http.Handler {
	return chimid.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimid.GetReqID(r.Context()); id != "" {
			w.Header().Set(chimid.RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	}))
}

// GetReqId 回傳 chi 產生的請求編號；沒有時為空字串
func GetReqId(r *http.Request) string {
	return chimid.GetReqID(r.Context())
}
