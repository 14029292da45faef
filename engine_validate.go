package authcore

import (
	"context"
	"errors"
	"time"

	"github.com/MrEthical07/authcore/jwt"
)

// Validate describes the validate operation and its observable behavior.
//
// Validate decodes and verifies a bearer token, consults the deny list when
// one is configured, and returns the authenticated subject and role. Every
// token failure — expired, forged, malformed, revoked — collapses into
// [ErrUnauthorized]; the precise cause is recorded only as an audit event so
// the API boundary never helps a caller distinguish a forged token from a
// stale one.
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Validate(ctx context.Context, token string) (*AuthResult, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	start := time.Now()

	claims, err := e.authority.Decode(token)
	if err != nil {
		e.classifyTokenFailure(ctx, "validate", err)
		return nil, ErrUnauthorized
	}

	if e.denyList != nil {
		revoked, err := e.denyList.IsRevoked(ctx, claims.ID)
		if err != nil {
			e.auditEmit(ctx, AuditEvent{
				EventType: "validate",
				UserID:    claims.Subject,
				TokenID:   claims.ID,
				Success:   false,
				Error:     err.Error(),
			})
			return nil, ErrDenyListUnavailable
		}
		if revoked {
			e.metricInc(MetricTokenRevoked)
			e.auditEmit(ctx, AuditEvent{
				EventType: "validate",
				UserID:    claims.Subject,
				TokenID:   claims.ID,
				Success:   false,
				Error:     "token revoked",
			})
			return nil, ErrUnauthorized
		}
	}

	e.metricInc(MetricValidateSuccess)
	e.metricObserve(MetricValidateLatency, time.Since(start))

	return &AuthResult{
		UserID:    claims.Subject,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// classifyTokenFailure records the decode-failure cause for diagnostics and
// returns the metric it counted. Callers still report ErrUnauthorized.
func (e *Engine) classifyTokenFailure(ctx context.Context, op string, err error) MetricID {
	id := MetricTokenInvalid
	if errors.Is(err, jwt.ErrTokenExpired) {
		id = MetricTokenExpired
	}

	e.metricInc(id)
	e.auditEmit(ctx, AuditEvent{
		EventType: op,
		Success:   false,
		Error:     err.Error(),
	})

	return id
}
