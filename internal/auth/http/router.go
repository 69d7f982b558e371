package http

import (
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/cubicworld/cwsite/internal/auth/domain"
	"github.com/cubicworld/cwsite/internal/auth/service"
	"github.com/cubicworld/cwsite/internal/auth/store"
	"github.com/cubicworld/cwsite/pkg/httpx"
	"github.com/cubicworld/cwsite/pkg/slogx"

	_ "github.com/cubicworld/cwsite/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// RateLimits holds the rate limit profile applied to each class of route.
type RateLimits struct {
	Strict   httpx.RateLimitConfig // login and callback
	Moderate httpx.RateLimitConfig // authenticated writes
	Public   httpx.RateLimitConfig // reads and health probes

	// TrustedProxies may set X-Forwarded-For and X-Real-IP. Empty means the
	// direct peer address is the client.
	TrustedProxies []netip.Prefix
}

// DefaultRateLimits returns the httpx default profiles.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Strict:   httpx.StrictLimit,
		Moderate: httpx.ModerateLimit,
		Public:   httpx.PublicLimit,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	Limits         RateLimits
	SessionService *service.SessionService
	PlayerService  *service.PlayerService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		Limits:       DefaultRateLimits(),
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ApplyRoutes registers every route. The services must be set first.
func (r *Router) ApplyRoutes() {
	r.registerOAuth2()
	r.registerPlayers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			cwsite Authentication Service API
//	@version		0.1.0
//	@description	Player login through Discord OAuth2 and player lookup for the cwsite game servers.
//	@description
//	@description				Logging in yields an opaque bearer credential. It does not expire; logging in again or logging out revokes it.
//
//	@contact.name				cwsite
//	@contact.url				https://github.com/cubicworld/cwsite
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Credential from the login callback. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerOAuth2() {
	// Login and callback create rows and hit the provider: strict limit by IP.
	login := &LoginHandler{SessionService: r.SessionService}
	r.Mux.Handle("GET /v1/oauth2/login",
		httpx.Chain(login,
			httpx.RateLimitByIP(r.Limits.Strict, r.Limits.TrustedProxies...),
		),
	)

	callback := &CallbackHandler{SessionService: r.SessionService}
	r.Mux.Handle("GET /v1/oauth2/callback",
		httpx.Chain(callback,
			httpx.RateLimitByIP(r.Limits.Strict, r.Limits.TrustedProxies...),
		),
	)

	logout := &LogoutHandler{SessionService: r.SessionService}
	r.Mux.Handle("POST /v1/logout",
		httpx.Chain(logout,
			httpx.AuthnMiddleware(r.resolveBearer),
			httpx.RateLimitBySubject(r.Limits.Moderate, r.Limits.TrustedProxies...),
		),
	)
}

func (r *Router) registerPlayers() {
	h := &PlayersHandler{PlayerService: r.PlayerService}

	r.Mux.Handle("GET /v1/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			httpx.AuthnMiddleware(r.resolveBearer),
			httpx.RateLimitBySubject(r.Limits.Public, r.Limits.TrustedProxies...),
		),
	)

	// Public lookups used by the game servers.
	r.Mux.Handle("GET /v1/players/id/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGetByID),
			httpx.RateLimitByIP(r.Limits.Public, r.Limits.TrustedProxies...),
		),
	)
	r.Mux.Handle("GET /v1/players/name/{name}",
		httpx.Chain(http.HandlerFunc(h.HandleGetByName),
			httpx.RateLimitByIP(r.Limits.Public, r.Limits.TrustedProxies...),
		),
	)
	r.Mux.Handle("GET /v1/players/discord/{discordID}",
		httpx.Chain(http.HandlerFunc(h.HandleGetByDiscordID),
			httpx.RateLimitByIP(r.Limits.Public, r.Limits.TrustedProxies...),
		),
	)

	r.Mux.Handle("POST /v1/players",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.resolveBearer),
			RequireTier(domain.TierModerator),
			httpx.RateLimitBySubject(r.Limits.Moderate, r.Limits.TrustedProxies...),
		),
	)
	r.Mux.Handle("PATCH /v1/players/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.resolveBearer),
			RequireTier(domain.TierMainModerator),
			httpx.RateLimitBySubject(r.Limits.Moderate, r.Limits.TrustedProxies...),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.Limits.Public, r.Limits.TrustedProxies...),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(r.Limits.Public, r.Limits.TrustedProxies...),
		),
	)
}
