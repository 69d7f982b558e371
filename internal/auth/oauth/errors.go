package oauth

import (
	"errors"
	"fmt"
)

// ErrUpstream matches every failure talking to the identity provider.
var ErrUpstream = errors.New("oauth: upstream failure")

// UpstreamError describes which round trip to the provider failed. The
// provider's response body is never included.
type UpstreamError struct {
	Op         string // "redeem" or "profile"
	StatusCode int    // 0 when no HTTP response was received
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("oauth %s: provider returned %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("oauth %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }
