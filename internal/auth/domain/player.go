package domain

import "time"

// Player is an internal identity bound to one Discord account.
type Player struct {
	ID        string    // internal opaque id, unique
	Name      string    // display name, unique
	DiscordID uint64    // provider-assigned account id, unique
	Email     *string   // as last reported by the provider (nullable)
	Role      RoleField // packed tier + reserved bits
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tier decodes the player's tier from the packed role field.
func (p Player) Tier() Tier { return p.Role.Tier() }

// PlayerUpdate carries the mutable fields of a player. Nil fields are left
// unchanged.
type PlayerUpdate struct {
	Name *string
	Tier *Tier
}
