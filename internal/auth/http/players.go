package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cubicworld/cwsite/internal/auth/domain"
	"github.com/cubicworld/cwsite/internal/auth/service"
	"github.com/cubicworld/cwsite/pkg/authsdk"
	"github.com/cubicworld/cwsite/pkg/httpx"
	"github.com/cubicworld/cwsite/pkg/slogx"
)

// PlayersHandler serves player lookups and moderation.
type PlayersHandler struct {
	PlayerService *service.PlayerService
}

// HandleMe handles GET /v1/me
//
//	@Summary		Current player
//	@Description	Returns the player the bearer credential belongs to, email included.
//	@Tags			Players
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.PlayerResponse
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/me [get]
func (h *PlayersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFromContext(r.Context())
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, playerView(p.Player, true))
}

// HandleGetByID handles GET /v1/players/id/{id}
//
//	@Summary		Find player by id
//	@Tags			Players
//	@Produce		json
//	@Param			id	path		string	true	"Player id"
//	@Success		200	{object}	authsdk.PlayerResponse
//	@Failure		404	{object}	authsdk.ErrorResponse	"No such player; fields name the id"
//	@Router			/v1/players/id/{id} [get]
func (h *PlayersHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, err := h.PlayerService.GetByID(r.Context(), id)
	h.writePlayer(w, r, p, err, "id", id)
}

// HandleGetByName handles GET /v1/players/name/{name}
//
//	@Summary		Find player by name
//	@Tags			Players
//	@Produce		json
//	@Param			name	path		string	true	"Player name"
//	@Success		200		{object}	authsdk.PlayerResponse
//	@Failure		404		{object}	authsdk.ErrorResponse	"No such player"
//	@Router			/v1/players/name/{name} [get]
func (h *PlayersHandler) HandleGetByName(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	p, err := h.PlayerService.GetByName(r.Context(), name)
	h.writePlayer(w, r, p, err, "name", name)
}

// HandleGetByDiscordID handles GET /v1/players/discord/{discordID}
//
//	@Summary		Find player by Discord account
//	@Tags			Players
//	@Produce		json
//	@Param			discordID	path		string	true	"Discord account id (decimal)"
//	@Success		200			{object}	authsdk.PlayerResponse
//	@Failure		400			{object}	authsdk.ErrorResponse	"Malformed id"
//	@Failure		404			{object}	authsdk.ErrorResponse	"No such player"
//	@Router			/v1/players/discord/{discordID} [get]
func (h *PlayersHandler) HandleGetByDiscordID(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("discordID")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		invalidField("discord_id", "must be a decimal account id").WriteError(w)
		return
	}

	p, err := h.PlayerService.GetByDiscordID(r.Context(), id)
	h.writePlayer(w, r, p, err, "discord_id", raw)
}

func (h *PlayersHandler) writePlayer(w http.ResponseWriter, r *http.Request, p domain.Player, err error, field, value string) {
	if err != nil {
		writeLookupError(w, r, err, field, value)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, playerView(p, false))
}

// HandleCreate handles POST /v1/players
//
//	@Summary		Provision a player
//	@Description	Creates a player bound to a Discord account before their first login. Requires moderator.
//	@Description	The caller cannot assign a tier they are not permitted themselves.
//	@Tags			Players
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		authsdk.CreatePlayerRequest	true	"Player to create"
//	@Success		201		{object}	authsdk.PlayerResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"error, error_description, fields"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	authsdk.ErrorResponse	"Tier too low"
//	@Failure		409		{object}	authsdk.ErrorResponse	"Id, name or Discord account taken; fields name both id and name"
//	@Failure		500		{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/players [post]
func (h *PlayersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := principalFromContext(ctx)
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req authsdk.CreatePlayerRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, "invalid JSON in request body").WriteError(w)
		return
	}

	name := strings.TrimSpace(req.Name)
	if !service.ValidName(name) {
		invalidField("name", "must be 2 to 32 printable characters without spaces").WriteError(w)
		return
	}
	discordID, err := strconv.ParseUint(req.DiscordID, 10, 64)
	if err != nil || discordID == 0 {
		invalidField("discord_id", "must be a non-zero decimal account id").WriteError(w)
		return
	}
	tier := domain.TierDefault
	if req.Tier != "" {
		if tier, ok = domain.ParseTier(req.Tier); !ok {
			invalidField("tier", "unknown tier").WriteError(w)
			return
		}
	}
	if !actor.Tier.IsPermitted(tier) {
		authsdk.ErrForbidden.WriteError(w)
		return
	}

	p, err := h.PlayerService.Create(ctx, domain.Player{
		ID:        strings.TrimSpace(req.ID),
		Name:      name,
		DiscordID: discordID,
		Role:      domain.RoleField(0).WithTier(tier),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(ctx).Info("player provisioned", "player_id", p.ID, "by", actor.Player.ID)
	httpx.WriteJSON(w, http.StatusCreated, playerView(p, false))
}

// HandleUpdate handles PATCH /v1/players/{id}
//
//	@Summary		Update a player
//	@Description	Renames a player and/or changes their tier. Requires main moderator.
//	@Description	The caller must be permitted both the player's current tier and the new one.
//	@Tags			Players
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Player id"
//	@Param			request	body		authsdk.UpdatePlayerRequest	true	"Fields to change"
//	@Success		200		{object}	authsdk.PlayerResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"error, error_description, fields"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	authsdk.ErrorResponse	"Tier too low"
//	@Failure		404		{object}	authsdk.ErrorResponse	"No such player"
//	@Failure		409		{object}	authsdk.ErrorResponse	"Name taken"
//	@Failure		500		{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/players/{id} [patch]
func (h *PlayersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := principalFromContext(ctx)
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req authsdk.UpdatePlayerRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, "invalid JSON in request body").WriteError(w)
		return
	}
	if req.Name == nil && req.Tier == nil {
		authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, "nothing to update").WriteError(w)
		return
	}

	var upd domain.PlayerUpdate
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !service.ValidName(name) {
			invalidField("name", "must be 2 to 32 printable characters without spaces").WriteError(w)
			return
		}
		upd.Name = &name
	}
	if req.Tier != nil {
		tier, ok := domain.ParseTier(*req.Tier)
		if !ok {
			invalidField("tier", "unknown tier").WriteError(w)
			return
		}
		upd.Tier = &tier
	}

	id := r.PathValue("id")
	p, err := h.PlayerService.Update(ctx, actor.Tier, id, upd)
	if err != nil {
		writeLookupError(w, r, err, "id", id)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, playerView(p, false))
}
