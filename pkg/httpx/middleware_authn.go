package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/cubicworld/cwsite/pkg/slogx"
)

// BearerResolver validates a presented bearer token and returns the context
// downstream handlers should run with. The returned context must carry the
// subject (see WithSubject).
type BearerResolver func(ctx context.Context, token string) (context.Context, error)

// AuthnMiddleware requires an `Authorization: Bearer <token>` header and
// hands the token to resolve.
func AuthnMiddleware(resolve BearerResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := BearerToken(r)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			ctx, err := resolve(ctx, raw)
			if err != nil {
				writeBearerError(w, "the access token is invalid or revoked")
				log.Debug("bearer token rejected", "err", err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an Authorization header. The scheme is
// matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(authz, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "invalid_token",
		"error_description": desc,
	})
}
