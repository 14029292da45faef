package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultAccessTTL is the token lifetime used when no TTL is configured or
// supplied at issuance.
const DefaultAccessTTL = 60 * time.Minute

var (
	// ErrTokenExpired is returned by Decode when the embedded expiry is not
	// strictly in the future.
	ErrTokenExpired = errors.New("token expired")
	// ErrInvalidSignature is returned by Decode when the signature does not
	// match the configured secret.
	ErrInvalidSignature = errors.New("token signature invalid")
	// ErrTokenMalformed is returned by Decode for structurally invalid input.
	ErrTokenMalformed = errors.New("token malformed")
)

// Config defines a public type used by authcore APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// Secret is the HMAC signing key. Write-once: loaded at process start and
	// never rotated within a process lifetime.
	Secret []byte

	// AccessTTL is the default token lifetime. Zero selects DefaultAccessTTL.
	AccessTTL time.Duration

	Issuer string
	Leeway time.Duration
}

// Claims defines a public type used by authcore APIs.
//
// Claims carries the subject identifier and role alongside the registered
// claim set (exp, iat, iss, jti). Decode returns the expiry claim as embedded;
// callers should treat it as informational.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Authority defines a public type used by authcore APIs.
//
// Authority instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Authority struct {
	config Config
}

// NewAuthority describes the newauthority operation and its observable behavior.
//
// NewAuthority may return an error when input validation, dependency calls, or security checks fail.
// NewAuthority does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewAuthority(cfg Config) (*Authority, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("hs256 requires a signing secret")
	}
	if cfg.AccessTTL < 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}

	return &Authority{config: cfg}, nil
}

// Issue describes the issue operation and its observable behavior.
//
// Issue signs a token carrying the subject, role, a fresh jti, and an expiry
// of now+ttl (ttl <= 0 selects the configured default). Two calls with the
// same inputs at different instants produce different tokens.
// Issue may return an error when input validation, dependency calls, or security checks fail.
// Issue does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Authority) Issue(sub string, role string, ttl time.Duration) (string, error) {
	if sub == "" {
		return "", errors.New("subject identifier required")
	}
	if ttl == 0 {
		ttl = a.config.AccessTTL
	}

	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    a.config.Issuer,
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.config.Secret)
}

// Decode describes the decode operation and its observable behavior.
//
// Decode verifies the signature against the configured secret, then the
// embedded expiry. Failures are classified as [ErrInvalidSignature],
// [ErrTokenExpired], or [ErrTokenMalformed]; Decode never panics on malformed
// input. These distinctions are for internal diagnostics — API boundaries must
// collapse them into a single unauthenticated outcome.
// Decode does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Authority) Decode(tokenStr string) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// Every issued token carries exp; one without it is malformed even if
		// the signature checks out.
		jwt.WithExpirationRequired(),
	}
	if a.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(a.config.Leeway))
	}
	if a.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(a.config.Issuer))
	}

	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.config.Secret, nil
	})
	if err != nil {
		return nil, classifyParseError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// classifyParseError maps jwt/v5 parse failures onto this package's sentinel
// set. Signature mismatch wins over expiry so a forged token is never reported
// as merely expired.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		return ErrTokenMalformed
	}
}
