package authcore

import (
	"context"
	"errors"
	"time"
)

// Login describes the login operation and its observable behavior.
//
// Login verifies the candidate password against the stored hash and, on
// success, issues a signed access token for the account. Unknown identifiers
// and wrong passwords both map to [ErrInvalidCredentials] so callers cannot
// distinguish them.
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Login(ctx context.Context, identifier, plaintext string) (string, error) {
	if e == nil || e.userStore == nil {
		return "", ErrEngineNotReady
	}

	user, err := e.userStore.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			e.metricInc(MetricLoginFailure)
			e.auditEmit(ctx, AuditEvent{
				EventType: "login",
				Success:   false,
				Error:     ErrUserNotFound.Error(),
			})
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !user.Active {
		e.metricInc(MetricLoginFailure)
		e.auditEmit(ctx, AuditEvent{
			EventType: "login",
			UserID:    user.UserID,
			Success:   false,
			Error:     ErrAccountDisabled.Error(),
		})
		return "", ErrAccountDisabled
	}

	start := time.Now()
	ok, err := e.codec.Verify(plaintext, user.PasswordHash)
	e.metricObserve(MetricHashLatency, time.Since(start))
	if err != nil || !ok {
		e.metricInc(MetricLoginFailure)
		event := AuditEvent{
			EventType: "login",
			UserID:    user.UserID,
			Success:   false,
			Error:     ErrInvalidCredentials.Error(),
		}
		if err != nil {
			event.Error = err.Error()
		}
		e.auditEmit(ctx, event)
		return "", ErrInvalidCredentials
	}

	token, err := e.authority.Issue(user.UserID, user.Role, 0)
	if err != nil {
		return "", err
	}

	e.metricInc(MetricLoginSuccess)
	e.metricInc(MetricTokenIssued)
	e.auditEmit(ctx, AuditEvent{
		EventType: "login",
		UserID:    user.UserID,
		Success:   true,
	})

	return token, nil
}

// Logout describes the logout operation and its observable behavior.
//
// Logout revokes the supplied token for the remainder of its lifetime via the
// deny list. It requires a Redis client at build time; without one tokens
// remain valid until natural expiry. Revoking an already-expired token is a
// successful no-op.
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state beyond the deny list entry and can be used concurrently.
func (e *Engine) Logout(ctx context.Context, token string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if e.denyList == nil {
		return ErrRevocationDisabled
	}

	claims, err := e.authority.Decode(token)
	if err != nil {
		if e.classifyTokenFailure(ctx, "logout", err) == MetricTokenExpired {
			return nil
		}
		return ErrUnauthorized
	}

	if err := e.denyList.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		e.auditEmit(ctx, AuditEvent{
			EventType: "logout",
			UserID:    claims.Subject,
			TokenID:   claims.ID,
			Success:   false,
			Error:     err.Error(),
		})
		return ErrDenyListUnavailable
	}

	e.metricInc(MetricLogout)
	e.auditEmit(ctx, AuditEvent{
		EventType: "logout",
		UserID:    claims.Subject,
		TokenID:   claims.ID,
		Success:   true,
	})

	return nil
}
