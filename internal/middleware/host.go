package middleware

import (
	"context"
	"net/http"
	"strings"
)

const headerForwardedHost = "X-Forwarded-Host"

type hostCtxKey struct{}

// Host records the host a visitor addressed, which decides custom-domain
// resolution. With trustProxy set, the first X-Forwarded-Host value takes
// precedence over the Host header.
func Host(trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := r.Host
			if trustProxy {
				if fwd := r.Header.Get(headerForwardedHost); fwd != "" {
					first, _, _ := strings.Cut(fwd, ",")
					host = strings.TrimSpace(first)
				}
			}
			ctx := context.WithValue(r.Context(), hostCtxKey{}, strings.ToLower(host))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// HostFromContext returns the host stored by Host, or "".
func HostFromContext(ctx context.Context) string {
	h, _ := ctx.Value(hostCtxKey{}).(string)
	return h
}
