// Package denylist implements a Redis-backed token deny list keyed by the
// jti claim.
//
// Tokens are stateless and stay valid until their own expiry, so revocation
// before expiry (logout, role change) has to be layered outside the token
// authority. This package is that layer: Revoke marks a token identifier for
// the remainder of the token's lifetime, and IsRevoked is consulted by
// Engine.Validate after a successful decode. Entries expire on their own —
// a revoked token's key outlives the token by nothing.
//
// # Architecture boundaries
//
// This package never parses or verifies tokens; callers pass the jti and the
// remaining lifetime. Keeping it separate preserves the token authority's
// stateless, horizontally-scalable property.
package denylist
