// Package jwt manages access-token issuance and verification with HMAC-SHA256
// signing and strict validation semantics suitable for low-latency
// authentication paths.
//
// Tokens are stateless: validity is determined entirely by signature and
// expiry at decode time. The [Authority] keeps no record of issued tokens and
// supports no revocation — callers needing early invalidation layer a deny
// list on top of the jti claim (see the denylist package).
package jwt
