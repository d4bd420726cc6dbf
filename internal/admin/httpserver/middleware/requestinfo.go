package middleware

import (
	"context"
	"net/http"
	"strings"
)

type requestInfoKey struct{}

// RequestInfo carries per-request metadata for log correlation.
type RequestInfo struct {
	Method   string
	Path     string
	BasePath string
}

// RequestInfoMiddleware records the method, path and mount point of every
// request so handlers can attach them to log entries.
func RequestInfoMiddleware(basePath string) func(http.Handler) http.Handler {
	base := strings.TrimSpace(basePath)
	if base == "" {
		base = "/"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info := RequestInfo{
				Method:   r.Method,
				Path:     r.URL.Path,
				BasePath: base,
			}
			ctx := context.WithValue(r.Context(), requestInfoKey{}, info)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestInfoFromContext returns the metadata recorded by RequestInfoMiddleware.
func RequestInfoFromContext(ctx context.Context) (RequestInfo, bool) {
	info, ok := ctx.Value(requestInfoKey{}).(RequestInfo)
	return info, ok
}
