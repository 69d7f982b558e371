package http

import (
	"strconv"

	"github.com/cubicworld/cwsite/internal/auth/domain"
	"github.com/cubicworld/cwsite/pkg/authsdk"
)

// playerView renders p for the wire. The email is private to the player.
func playerView(p domain.Player, withEmail bool) authsdk.PlayerResponse {
	tier := p.Tier()
	v := authsdk.PlayerResponse{
		ID:          p.ID,
		Name:        p.Name,
		DiscordID:   strconv.FormatUint(p.DiscordID, 10),
		Tier:        tier.String(),
		TierCode:    uint8(tier),
		IsModerator: tier.IsModerator(),
		IsDeveloper: tier.IsDeveloper(),
		IsPremium:   tier.IsPremium(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if withEmail {
		v.Email = p.Email
	}
	return v
}
