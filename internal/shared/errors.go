package shared

import "errors"

var (

	// repository specific errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// service specific errors
	ErrorInternal       = errors.New("internal error")
	ErrorUnauthorized   = errors.New("unauthorized")
	ErrorSessionExpired = errors.New("session expired")

	// invariant violations that must fail closed
	ErrorInconsistentState = errors.New("internal consistency violation")

	// registration-specific errors
	ErrorInvalidEmail = errors.New("invalid e-mail address")

	// credential-specific errors
	ErrorInvalidSalt = errors.New("invalid salt")
)
