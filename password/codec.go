package password

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MaxPasswordBytes is the normalization byte limit applied before hashing.
	// It leaves one byte of margin under the 72-byte bcrypt input ceiling.
	MaxPasswordBytes = 71

	// bcryptCeiling is the hard input limit of the bcrypt primitive. Normalize
	// guarantees we never reach it; Hash re-checks as an internal invariant.
	bcryptCeiling = 72
)

var (
	// ErrNotText is returned when a password is not a valid UTF-8 sequence.
	ErrNotText = errors.New("password is not valid utf-8 text")
	// ErrNegativeLimit is returned by Normalize for a negative byte limit.
	ErrNegativeLimit = errors.New("negative truncation limit")
)

// Config defines a public type used by authcore APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Cost int
}

// Codec defines a public type used by authcore APIs.
//
// Codec instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Codec struct {
	config Config
}

// NewCodec describes the newcodec operation and its observable behavior.
//
// NewCodec may return an error when input validation, dependency calls, or security checks fail.
// NewCodec does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewCodec(cfg Config) (*Codec, error) {
	if cfg.Cost < bcrypt.MinCost || cfg.Cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &Codec{config: cfg}, nil
}

// Normalize truncates raw so its UTF-8 byte length is at most limit, never
// splitting a multi-byte rune. Input already within the limit is returned
// unchanged. A limit of 0 yields the empty string; a negative limit is an
// error, as is input that is not valid UTF-8.
//
// Normalize is pure: the same raw and limit always produce the same result,
// and Normalize(Normalize(s, n), n) == Normalize(s, n).
func Normalize(raw string, limit int) (string, error) {
	if limit < 0 {
		return "", ErrNegativeLimit
	}
	if !utf8.ValidString(raw) {
		return "", ErrNotText
	}
	if len(raw) <= limit {
		return raw, nil
	}

	// Walk back from the limit to the nearest rune boundary.
	i := limit
	for i > 0 && !utf8.RuneStart(raw[i]) {
		i--
	}

	return raw[:i], nil
}

// Hash describes the hash operation and its observable behavior.
//
// Hash normalizes the plaintext to [MaxPasswordBytes] bytes, pre-hashes it
// with SHA-256, and derives a salted bcrypt digest at the configured cost.
// Hash may return an error when input validation, dependency calls, or security checks fail.
// Hash does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Codec) Hash(raw string) (string, error) {
	safe, err := Normalize(raw, MaxPasswordBytes)
	if err != nil {
		return "", err
	}
	if len(safe) > bcryptCeiling {
		// Unreachable given the Normalize contract.
		return "", fmt.Errorf("normalized password is %d bytes, exceeds the %d-byte ceiling", len(safe), bcryptCeiling)
	}

	digest, err := bcrypt.GenerateFromPassword(prehash(safe), c.config.Cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}

	return string(digest), nil
}

// Verify describes the verify operation and its observable behavior.
//
// Verify normalizes the candidate exactly as Hash does and compares it against
// the stored digest in constant time. A mismatch is reported as (false, nil),
// never as an error; errors indicate invalid input or a corrupt stored hash.
// Verify does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Codec) Verify(candidate string, stored string) (bool, error) {
	safe, err := Normalize(candidate, MaxPasswordBytes)
	if err != nil {
		return false, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(stored), prehash(safe))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("bcrypt compare: %w", err)
	}
}

// prehash fixes the bcrypt input width: SHA-256 then standard base64, 44 bytes
// for any password length.
func prehash(safe string) []byte {
	sum := sha256.Sum256([]byte(safe))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
