package internaldefs

import (
	authcore "github.com/MrEthical07/authcore"
)

// CounterDef defines a public type used by authcore APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   authcore.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by authcore APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   authcore.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the credential engine.
var CounterDefs = []CounterDef{
	{ID: authcore.MetricLoginSuccess, Name: "authcore_login_success_total", Help: "Successful login attempts."},
	{ID: authcore.MetricLoginFailure, Name: "authcore_login_failure_total", Help: "Failed login attempts."},
	{ID: authcore.MetricRegisterSuccess, Name: "authcore_register_success_total", Help: "Successful account registrations."},
	{ID: authcore.MetricRegisterDuplicate, Name: "authcore_register_duplicate_total", Help: "Registration attempts rejected as duplicate."},
	{ID: authcore.MetricRegisterRejected, Name: "authcore_register_rejected_total", Help: "Registration attempts rejected by password policy or input validation."},
	{ID: authcore.MetricTokenIssued, Name: "authcore_token_issued_total", Help: "Issued access tokens."},
	{ID: authcore.MetricTokenExpired, Name: "authcore_token_expired_total", Help: "Tokens rejected as expired."},
	{ID: authcore.MetricTokenInvalid, Name: "authcore_token_invalid_total", Help: "Tokens rejected as forged or malformed."},
	{ID: authcore.MetricTokenRevoked, Name: "authcore_token_revoked_total", Help: "Tokens rejected via the deny list."},
	{ID: authcore.MetricValidateSuccess, Name: "authcore_validate_success_total", Help: "Successful token validations."},
	{ID: authcore.MetricLogout, Name: "authcore_logout_total", Help: "Logout operations."},
	{ID: authcore.MetricHashingFailure, Name: "authcore_hashing_failure_total", Help: "Internal password hashing failures."},
}

// HistogramDefs is an exported constant or variable used by the credential engine.
var HistogramDefs = []HistogramDef{
	{ID: authcore.MetricHashLatency, Name: "authcore_hash_latency_seconds", Help: "Password hashing and verification latency histogram."},
	{ID: authcore.MetricValidateLatency, Name: "authcore_validate_latency_seconds", Help: "Token validation latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the credential engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the credential engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
