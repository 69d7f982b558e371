package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cubicworld/cwsite/internal/auth/service"
	"github.com/cubicworld/cwsite/pkg/authsdk"
	"github.com/cubicworld/cwsite/pkg/slogx"
)

// writeServiceError maps a service error onto its API error. Anything
// unrecognised is logged and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var conflict *service.ConflictError
	switch {
	case errors.As(err, &conflict):
		fields := map[string]string{"id": conflict.ID, "name": conflict.Name}
		if conflict.DiscordID != 0 {
			fields["discord_id"] = strconv.FormatUint(conflict.DiscordID, 10)
		}
		authsdk.ErrConflict.WithFields(fields).WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		authsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrForbidden):
		authsdk.ErrForbidden.WriteError(w)
	case errors.Is(err, service.ErrInvalidState):
		authsdk.ErrInvalidState.WriteError(w)
	case errors.Is(err, service.ErrInvalidPlayer):
		authsdk.ErrInvalidRequest.WriteError(w)
	case errors.Is(err, service.ErrUpstream):
		slogx.FromContext(r.Context()).Warn("upstream failure", "err", err)
		authsdk.ErrUpstream.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
	}
}

// writeLookupError is writeServiceError for keyed lookups: a missing player
// names the key it was looked up by.
func writeLookupError(w http.ResponseWriter, r *http.Request, err error, field, value string) {
	if errors.Is(err, service.ErrNotFound) {
		authsdk.ErrNotFound.WithFields(map[string]string{field: value}).WriteError(w)
		return
	}
	writeServiceError(w, r, err)
}

func invalidField(field, problem string) *authsdk.APIError {
	return authsdk.ErrInvalidRequest.WithFields(map[string]string{field: problem})
}
