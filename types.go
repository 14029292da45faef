package authcore

import (
	"context"
	"time"
)

// UserRecord is the account record exchanged with a [UserStore]. It carries
// the stored credential hash, the role claim value, and the active flag; the
// Engine never sees plaintext past the hashing boundary.
type UserRecord struct {
	UserID       string
	Identifier   string
	FullName     string
	PasswordHash string
	Role         string
	Active       bool
}

// CreateUserInput is the payload passed to [UserStore.CreateUser] during
// registration. PasswordHash is already derived; stores persist it verbatim
// as an opaque string.
type CreateUserInput struct {
	Identifier   string
	PasswordHash string
	FullName     string
	Role         string
}

// UserStore is the interface callers implement to integrate authcore with
// their user database. It is the only persistence the Engine touches.
//
// Implementations return [ErrUserNotFound] for unknown identifiers and
// [ErrAccountExists] for duplicate creation attempts; any other error is
// treated as a backend failure and surfaced unchanged.
type UserStore interface {
	GetUserByIdentifier(ctx context.Context, identifier string) (UserRecord, error)
	GetUserByID(ctx context.Context, userID string) (UserRecord, error)
	CreateUser(ctx context.Context, input CreateUserInput) (UserRecord, error)
}

// AuthResult is returned by [Engine.Validate]. It contains the authenticated
// subject, the role claim, the token identifier (jti), and the token's expiry
// instant. Callers should not make decisions on ExpiresAt — a returned result
// is valid by definition at the time of the call.
type AuthResult struct {
	UserID    string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}
