package apierrors

import (
	"errors"
	"fmt"
)

// Common error types for the dashboard auth core
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleNotAllowed     = errors.New("role not allowed on the admin surface")

	// Token errors
	ErrNoRefreshToken      = errors.New("no refresh token")
	ErrRefreshFailed       = errors.New("token refresh failed")
	ErrMalformedToken      = errors.New("malformed access token")
	ErrIncompleteTokenPair = errors.New("token pair incomplete")

	// Permission errors
	ErrMalformedPermissions = errors.New("malformed permission payload")

	// General errors
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
