package app

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cubicworld/cwsite/pkg/httpx"
)

type Config struct {
	Port                 int           `env:"CWSITE_PORT"                  envDefault:"8080"`
	Env                  string        `env:"CWSITE_ENV"                   envDefault:"dev"`  // dev, staging, prod
	LogLevel             string        `env:"CWSITE_LOG_LEVEL"             envDefault:"info"` // debug, info, warn, error
	LogFormat            string        `env:"CWSITE_LOG_FORMAT"            envDefault:"json"` // json, text
	DatabaseFile         string        `env:"CWSITE_DATABASE_FILE"         envDefault:"cwsite.db"`
	ShutdownGracePeriod  time.Duration `env:"CWSITE_SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"CWSITE_HOUSEKEEPING_INTERVAL" envDefault:"15m"`
	PendingAuthTTL       time.Duration `env:"CWSITE_PENDING_AUTH_TTL"      envDefault:"10m"`

	// Discord application credentials. The names predate the CWSITE_ prefix
	// and are kept for existing deployments.
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURI  string `env:"REDIRECT_URI"`

	DiscordAPIURL  string        `env:"CWSITE_DISCORD_API_URL" envDefault:"https://discord.com/api/v10"`
	DiscordScopes  []string      `env:"CWSITE_DISCORD_SCOPES"  envDefault:"identify,email" envSeparator:","`
	DiscordTimeout time.Duration `env:"CWSITE_DISCORD_TIMEOUT" envDefault:"10s"`

	// Rate limit profiles. Unset variables keep the httpx defaults; a zero
	// REQUESTS disables the profile.
	StrictLimit   httpx.RateLimitConfig `envPrefix:"CWSITE_RATELIMIT_STRICT_"`
	ModerateLimit httpx.RateLimitConfig `envPrefix:"CWSITE_RATELIMIT_MODERATE_"`
	PublicLimit   httpx.RateLimitConfig `envPrefix:"CWSITE_RATELIMIT_PUBLIC_"`

	// Reverse proxies (CIDRs or addresses) whose forwarding headers name the
	// client for rate limiting. Unset means headers are ignored.
	TrustedProxies []string `env:"CWSITE_TRUSTED_PROXIES" envSeparator:","`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	cfg := Config{
		StrictLimit:   httpx.StrictLimit,
		ModerateLimit: httpx.ModerateLimit,
		PublicLimit:   httpx.PublicLimit,
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports every problem with cfg at once.
func (c Config) Validate() error {
	var errs []error

	if c.ClientID == "" {
		errs = append(errs, errors.New("CLIENT_ID is required"))
	}
	if c.ClientSecret == "" {
		errs = append(errs, errors.New("CLIENT_SECRET is required"))
	}
	if c.RedirectURI == "" {
		errs = append(errs, errors.New("REDIRECT_URI is required"))
	} else if u, err := url.ParseRequestURI(c.RedirectURI); err != nil || u.Host == "" {
		errs = append(errs, fmt.Errorf("REDIRECT_URI %q is not an absolute url", c.RedirectURI))
	}

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("CWSITE_PORT %d out of range", c.Port))
	}
	if c.DatabaseFile == "" {
		errs = append(errs, errors.New("CWSITE_DATABASE_FILE must not be empty"))
	}
	if c.PendingAuthTTL <= 0 {
		errs = append(errs, errors.New("CWSITE_PENDING_AUTH_TTL must be positive"))
	}
	if c.HousekeepingInterval <= 0 {
		errs = append(errs, errors.New("CWSITE_HOUSEKEEPING_INTERVAL must be positive"))
	}

	if _, err := httpx.ParseTrustedProxies(c.TrustedProxies); err != nil {
		errs = append(errs, fmt.Errorf("CWSITE_TRUSTED_PROXIES: %w", err))
	}

	return errors.Join(errs...)
}

// TrustedProxyPrefixes returns the parsed trusted proxies. Entries that fail
// to parse are reported by Validate and skipped here.
func (c Config) TrustedProxyPrefixes() []netip.Prefix {
	var prefixes []netip.Prefix
	for _, v := range c.TrustedProxies {
		p, err := httpx.ParseTrustedProxies([]string{v})
		if err == nil {
			prefixes = append(prefixes, p...)
		}
	}
	return prefixes
}
