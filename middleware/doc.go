// Package middleware exposes the HTTP adapter for bearer-token enforcement
// built on top of authcore Engine validation.
//
// [Guard] reads the Authorization header, calls Engine.Validate, and injects
// the validated [authcore.AuthResult] into the request context, where
// handlers retrieve it with [AuthResultFromContext].
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement authentication logic itself — all decisions are delegated to
// Engine.Validate.
//
// # What this package must NOT do
//
//   - Parse or create tokens directly (delegates to Engine).
//   - Distinguish rejection causes in responses: every failure is a plain
//     401 so the wire never reveals whether a token expired or was forged.
package middleware
