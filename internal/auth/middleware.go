package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"ixfguard/internal/domain"
)

type principalKey struct{}

// PrincipalFromRequest decodes the bearer token of r. A request without an
// Authorization header is anonymous and yields nil without error.
func PrincipalFromRequest(r *http.Request) (*domain.User, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, errors.New("missing or malformed Authorization header")
	}
	claims, err := ValidateJWT(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return nil, err
	}
	return claims.User(), nil
}

// WithPrincipal resolves the caller once and stores it on the request
// context. Invalid tokens are rejected; missing ones pass as anonymous.
func WithPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := PrincipalFromRequest(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if user != nil {
			r = r.WithContext(context.WithValue(r.Context(), principalKey{}, user))
		}
		next.ServeHTTP(w, r)
	})
}

// FromContext returns the principal stored by WithPrincipal, or nil.
func FromContext(ctx context.Context) domain.Principal {
	if user, ok := ctx.Value(principalKey{}).(*domain.User); ok && user != nil {
		return user
	}
	return nil
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if FromContext(r.Context()) == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IsAdmin only lets privileged principals through.
func IsAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := FromContext(r.Context())
		if principal == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if !principal.IsPrivileged() {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
