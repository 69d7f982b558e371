package domain

import "strings"

// RoleField is the packed role column stored on every player. The low three
// bits hold the Tier, the remaining bits are reserved for secondary roles.
type RoleField uint32

// Tier is the ordinal permission level packed into a RoleField. Higher values
// grant more privileges, with the Developer exception documented on
// IsPermitted.
type Tier uint8

const (
	TierDefault       Tier = 0
	TierPremium       Tier = 1
	TierTestModerator Tier = 2
	TierModerator     Tier = 3
	TierMainModerator Tier = 4
	TierDeveloper     Tier = 5
	TierReserved      Tier = 6 // never assigned, decodes to TierDefault
	TierAdmin         Tier = 7
)

const tierMask RoleField = 0b111

// DecodeTier extracts the tier from the low three bits of field. Codes with no
// assigned tier fall back to TierDefault.
func DecodeTier(field RoleField) Tier {
	switch t := Tier(field & tierMask); t {
	case TierDefault, TierPremium, TierTestModerator, TierModerator,
		TierMainModerator, TierDeveloper, TierAdmin:
		return t
	default:
		return TierDefault
	}
}

// EncodeTier replaces the tier bits of field with t and leaves every other bit
// untouched.
func EncodeTier(field RoleField, t Tier) RoleField {
	return (field &^ tierMask) | (RoleField(t) & tierMask)
}

// SecondaryRoleBits returns the reserved bits above the tier. No secondary
// roles are defined yet so callers only carry these bits through.
func SecondaryRoleBits(field RoleField) RoleField {
	return field &^ tierMask
}

// Tier is shorthand for DecodeTier(f).
func (f RoleField) Tier() Tier { return DecodeTier(f) }

// WithTier is shorthand for EncodeTier(f, t).
func (f RoleField) WithTier(t Tier) RoleField { return EncodeTier(f, t) }

// IsPermitted reports whether a holder of t passes a check that requires
// required. An exact match always passes. Otherwise the check is numeric,
// except that a Developer only ever satisfies an exact Developer check.
func (t Tier) IsPermitted(required Tier) bool {
	if t == required {
		return true
	}
	return t != TierDeveloper && t >= required
}

// IsModerator holds for the moderation tiers and Admin. Developer is not a
// moderator.
func (t Tier) IsModerator() bool {
	switch t {
	case TierTestModerator, TierModerator, TierMainModerator, TierAdmin:
		return true
	default:
		return false
	}
}

// IsDeveloper holds for Developer and Admin.
func (t Tier) IsDeveloper() bool {
	return t == TierDeveloper || t == TierAdmin
}

// IsPremium holds for every tier except Default.
func (t Tier) IsPremium() bool {
	return t != TierDefault
}

var tierNames = map[Tier]string{
	TierDefault:       "default",
	TierPremium:       "premium",
	TierTestModerator: "test_moderator",
	TierModerator:     "moderator",
	TierMainModerator: "main_moderator",
	TierDeveloper:     "developer",
	TierReserved:      "reserved",
	TierAdmin:         "admin",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseTier maps a tier name (case-insensitive) back to its Tier. The reserved
// code is not assignable and is rejected.
func ParseTier(s string) (Tier, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range tierNames {
		if t == TierReserved {
			continue
		}
		if name == s {
			return t, true
		}
	}
	return TierDefault, false
}
