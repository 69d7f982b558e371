package http

import (
	"net/http"

	"github.com/cubicworld/cwsite/internal/auth/service"
	"github.com/cubicworld/cwsite/pkg/authsdk"
	"github.com/cubicworld/cwsite/pkg/httpx"
)

// LoginHandler starts a Discord login.
type LoginHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP redirects the browser to Discord with a fresh state and PKCE
// challenge.
//
//	@Summary		Begin login
//	@Description	Starts a login attempt and redirects to the Discord consent screen.
//	@Description	The attempt must be completed through /v1/oauth2/callback within the pending authorization TTL.
//	@Tags			OAuth2
//	@Success		302	{string}	string					"Redirect to Discord"
//	@Failure		429	{object}	authsdk.ErrorResponse	"Rate limited"
//	@Failure		500	{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/oauth2/login [get]
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.SessionService == nil {
		authsdk.ErrServerError.WriteError(w)
		return
	}

	authURL, err := h.SessionService.Begin(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	http.Redirect(w, r, authURL, http.StatusFound)
}
