package httpx

import (
	"context"
	"net/http"
)

// Require admits the request only when allow reports true for its context.
// Rejections get a 403 with an RFC 6750 insufficient_scope challenge naming
// want.
func Require(want string, allow func(context.Context) bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allow(r.Context()) {
				writeBearerScopeError(w, want)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeBearerScopeError(w http.ResponseWriter, want string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+want+`"`)
	WriteJSON(w, http.StatusForbidden, map[string]string{
		"error":             "insufficient_scope",
		"error_description": "requires " + want,
	})
}
