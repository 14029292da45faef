// Package authcore provides the credential-handling core for small web
// services: byte-bounded password normalization with salted slow hashing, and
// signed, time-bounded bearer-token issuance and validation.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// authcore is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (AuthResult, UserRecord, MetricsSnapshot, AuditEvent).
// Password hashing lives in the password sub-package, token signing in the
// jwt sub-package, and the optional Redis deny list in the denylist
// sub-package. The caller composes them through the Engine; the sub-packages
// never import each other.
//
// Everything around the core is an external collaborator: HTTP routing,
// persistence, migration, and transport stay outside. The Engine receives
// plaintext and returns hashes, receives candidates and returns booleans,
// receives claims and returns tokens.
//
// # What this package must NOT do
//
//   - Persist users — callers supply a [UserStore] implementation.
//   - Log or emit plaintext password material, under any configuration.
//   - Reveal to API callers whether a token failed validation because it
//     expired or because it was forged; that distinction is audit-only.
//
// # Performance contract
//
// Validate is the hot path: token decode is sub-millisecond and allocates
// only the returned result, plus one Redis round-trip when a deny list is
// configured. Hash and Verify are deliberately expensive (bcrypt, tunable
// cost) and block the calling goroutine for tens to hundreds of
// milliseconds; run them off latency-sensitive paths.
package authcore
