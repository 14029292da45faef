// Package password implements byte-bounded password normalization plus salted
// slow hashing and verification on a bcrypt core.
//
// # Normalization
//
// bcrypt silently ignores input past its 72-byte ceiling, so every plaintext is
// first normalized: [Normalize] truncates the UTF-8 encoding to at most 71
// bytes, always ending on a complete rune. The same plaintext therefore always
// produces the same normalized form, and hashing never feeds bcrypt ambiguous
// input.
//
// # Output format
//
// Before bcrypt the normalized password is pre-hashed with SHA-256 and encoded
// as base64, which fixes the bcrypt input width regardless of password length.
// Hashes are stored in bcrypt's self-describing modular crypt format:
//
//	$2a$<cost>$<salt+digest>
//
// # Architecture boundaries
//
// This package owns normalization, hashing, and verification only. Password
// policy (minimum length, reuse history) is enforced by the Engine.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords — callers supply plaintext and receive hashes.
//   - Import any other authcore package.
//   - Log or otherwise emit plaintext password material, at any verbosity.
package password
