package http

import (
	"context"

	"github.com/cubicworld/cwsite/internal/auth/domain"
	"github.com/cubicworld/cwsite/internal/auth/service"
	"github.com/cubicworld/cwsite/pkg/httpx"
	"github.com/cubicworld/cwsite/pkg/slogx"
)

type principalKey struct{}

// resolveBearer is the httpx.BearerResolver for player credentials.
func (r *Router) resolveBearer(ctx context.Context, token string) (context.Context, error) {
	p, err := r.SessionService.Resolve(ctx, token)
	if err != nil {
		return ctx, err
	}

	ctx = context.WithValue(ctx, principalKey{}, p)
	ctx = httpx.WithSubject(ctx, p.Player.ID)
	ctx = slogx.With(ctx, "player_id", p.Player.ID)
	return ctx, nil
}

func principalFromContext(ctx context.Context) (service.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(service.Principal)
	return p, ok
}

// RequireTier admits authenticated callers whose tier is permitted t.
func RequireTier(t domain.Tier) httpx.Middleware {
	return httpx.Require(t.String(), func(ctx context.Context) bool {
		p, ok := principalFromContext(ctx)
		return ok && p.Tier.IsPermitted(t)
	})
}
