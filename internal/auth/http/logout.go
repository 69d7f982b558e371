package http

import (
	"net/http"

	"github.com/cubicworld/cwsite/internal/auth/service"
	"github.com/cubicworld/cwsite/pkg/authsdk"
)

type LogoutHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP revokes every credential of the caller.
//
//	@Summary		Log out
//	@Description	Revokes every credential of the authenticated player, the presented one included.
//	@Tags			OAuth2
//	@Security		BearerAuth
//	@Success		204	"Credentials revoked"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		500	{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/logout [post]
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFromContext(r.Context())
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.SessionService.Logout(r.Context(), p.Player.DiscordID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
