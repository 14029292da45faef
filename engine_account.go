package authcore

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/MrEthical07/authcore/password"
)

// Register describes the register operation and its observable behavior.
//
// Register enforces the caller-level minimum-length policy, derives the
// password hash, and creates the account through the configured [UserStore].
// The plaintext never crosses the hashing boundary and is never logged or
// audited.
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Register(ctx context.Context, identifier, plaintext, fullName string) (UserRecord, error) {
	if e == nil || e.userStore == nil {
		return UserRecord{}, ErrEngineNotReady
	}
	if identifier == "" {
		return UserRecord{}, ErrRegistrationInvalid
	}

	if e.config.Password.MinLength > 0 && utf8.RuneCountInString(plaintext) < e.config.Password.MinLength {
		e.metricInc(MetricRegisterRejected)
		e.auditEmit(ctx, AuditEvent{
			EventType: "register",
			Success:   false,
			Error:     ErrPasswordPolicy.Error(),
		})
		return UserRecord{}, ErrPasswordPolicy
	}

	start := time.Now()
	hash, err := e.codec.Hash(plaintext)
	e.metricObserve(MetricHashLatency, time.Since(start))
	if err != nil {
		if errors.Is(err, password.ErrNotText) {
			e.metricInc(MetricRegisterRejected)
			return UserRecord{}, ErrRegistrationInvalid
		}
		// Unreachable given the normalize contract: an internal invariant
		// violation, not a user error.
		e.metricInc(MetricHashingFailure)
		e.auditEmit(ctx, AuditEvent{
			EventType: "register",
			Success:   false,
			Error:     err.Error(),
		})
		return UserRecord{}, ErrHashingFailure
	}

	user, err := e.userStore.CreateUser(ctx, CreateUserInput{
		Identifier:   identifier,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         "user",
	})
	if err != nil {
		if errors.Is(err, ErrAccountExists) {
			e.metricInc(MetricRegisterDuplicate)
			e.auditEmit(ctx, AuditEvent{
				EventType: "register",
				Success:   false,
				Error:     ErrAccountExists.Error(),
			})
			return UserRecord{}, ErrAccountExists
		}
		return UserRecord{}, err
	}

	e.metricInc(MetricRegisterSuccess)
	e.auditEmit(ctx, AuditEvent{
		EventType: "register",
		UserID:    user.UserID,
		Success:   true,
	})

	return user, nil
}
