package authsdk

import "time"

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is a stable machine-readable code (e.g. "not_found", "conflict")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`

	// Fields maps each offending request field to the rejected value or the
	// problem with it. Only present on client-correctable (4xx) errors.
	Fields map[string]string `json:"fields,omitempty"`
}

// ============================================================================
// Player Types
// ============================================================================

// PlayerResponse is the public view of a player.
type PlayerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// DiscordID is a decimal string; snowflakes exceed the float64 range
	DiscordID string `json:"discord_id"`

	// Email is only returned to the player themselves
	Email *string `json:"email,omitempty"`

	// Tier is the tier name (e.g. "moderator") and TierCode its numeric value
	Tier     string `json:"tier"`
	TierCode uint8  `json:"tier_code"`

	IsModerator bool `json:"is_moderator"`
	IsDeveloper bool `json:"is_developer"`
	IsPremium   bool `json:"is_premium"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePlayerRequest provisions a player ahead of their first login.
type CreatePlayerRequest struct {
	// ID is optional; the server generates one when empty
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	DiscordID string `json:"discord_id"`

	// Tier defaults to "default"
	Tier string `json:"tier,omitempty"`
}

// UpdatePlayerRequest changes a player's name and/or tier. Omitted fields are
// left unchanged.
type UpdatePlayerRequest struct {
	Name *string `json:"name,omitempty"`
	Tier *string `json:"tier,omitempty"`
}

// ============================================================================
// Session Types
// ============================================================================

// SessionResponse is returned by the OAuth callback once login completes.
type SessionResponse struct {
	// AccessToken is the opaque bearer credential
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// Created is true when this login provisioned the player
	Created bool `json:"created"`

	Player PlayerResponse `json:"player"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`
}
