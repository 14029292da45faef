package authcore

import "errors"

var (
	// ErrUnauthorized is an exported constant or variable used by the credential engine.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials is an exported constant or variable used by the credential engine.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is an exported constant or variable used by the credential engine.
	ErrUserNotFound = errors.New("user not found")
	// ErrAccountExists is an exported constant or variable used by the credential engine.
	ErrAccountExists = errors.New("account already exists")
	// ErrAccountDisabled is an exported constant or variable used by the credential engine.
	ErrAccountDisabled = errors.New("account disabled")
	// ErrRegistrationInvalid is an exported constant or variable used by the credential engine.
	ErrRegistrationInvalid = errors.New("invalid registration request")
	// ErrPasswordPolicy is an exported constant or variable used by the credential engine.
	ErrPasswordPolicy = errors.New("password policy violation")
	// ErrHashingFailure is an exported constant or variable used by the credential engine.
	ErrHashingFailure = errors.New("password hashing failure")
	// ErrProductionSecret is an exported constant or variable used by the credential engine.
	ErrProductionSecret = errors.New("production mode requires a non-default signing secret")
	// ErrRevocationDisabled is an exported constant or variable used by the credential engine.
	ErrRevocationDisabled = errors.New("token revocation requires a redis client")
	// ErrDenyListUnavailable is an exported constant or variable used by the credential engine.
	ErrDenyListUnavailable = errors.New("deny list backend unavailable")
	// ErrEngineNotReady is an exported constant or variable used by the credential engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
