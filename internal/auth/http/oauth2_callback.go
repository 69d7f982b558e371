package http

import (
	"net/http"

	"github.com/cubicworld/cwsite/internal/auth/service"
	"github.com/cubicworld/cwsite/pkg/authsdk"
	"github.com/cubicworld/cwsite/pkg/httpx"
	"github.com/cubicworld/cwsite/pkg/slogx"
)

// CallbackHandler completes a Discord login.
type CallbackHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP handles the redirect back from Discord.
//
//	@Summary		Complete login
//	@Description	Consumes the login attempt named by state, exchanges code with Discord and returns a fresh credential.
//	@Description	Every earlier credential of the player is revoked. A player is provisioned on first login.
//	@Tags			OAuth2
//	@Produce		json
//	@Param			code	query		string					true	"Authorization code from Discord"
//	@Param			state	query		string					true	"State issued by /v1/oauth2/login"
//	@Param			error	query		string					false	"Set by Discord when the user declined"
//	@Success		200		{object}	authsdk.SessionResponse	"access_token, token_type, created, player"
//	@Failure		400		{object}	authsdk.ErrorResponse	"Missing parameters, declined consent, or unknown or expired state"
//	@Failure		429		{object}	authsdk.ErrorResponse	"Rate limited"
//	@Failure		502		{object}	authsdk.ErrorResponse	"Discord failed"
//	@Failure		500		{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/oauth2/callback [get]
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	if providerErr := q.Get("error"); providerErr != "" {
		slogx.FromContext(ctx).Info("login declined at provider", "provider_error", providerErr)
		authsdk.ErrAccessDenied.WithFields(map[string]string{"error": providerErr}).WriteError(w)
		return
	}

	code, state := q.Get("code"), q.Get("state")
	switch {
	case code == "":
		invalidField("code", "required").WriteError(w)
		return
	case state == "":
		invalidField("state", "required").WriteError(w)
		return
	}

	sess, err := h.SessionService.Complete(ctx, state, code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.SessionResponse{
		AccessToken: sess.Token,
		TokenType:   "Bearer",
		Created:     sess.Created,
		Player:      playerView(sess.Player, true),
	})
}
