package httpx

import "context"

type ctxKey string

const (
	CtxKeySubject ctxKey = "subject"
)

// WithSubject records the authenticated subject (the player id) on ctx.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, CtxKeySubject, subject)
}

// SubjectFromContext returns the authenticated subject, if any.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(CtxKeySubject).(string)
	return s, ok && s != ""
}
