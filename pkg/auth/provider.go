package auth

import (
	"context"
	"net/http"
)

type contextKey string

const (
	UserContextKey  contextKey = "auth.user"
	EmailContextKey contextKey = "auth.email"
)

type Provider interface {
	Authenticate(ctx context.Context, r *http.Request) (context.Context, error)
}

// Middleware rejects requests that none of the providers accept. Without
// providers every request passes.
func Middleware(providers []Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(providers) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			for _, p := range providers {
				ctx, err := p.Authenticate(r.Context(), r)

				if err != nil {
					continue
				}

				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			w.Header().Set("WWW-Authenticate", "Bearer")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		})
	}
}
