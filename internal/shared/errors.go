package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authorization flow errors
	ErrAuthDenied       = fmt.Errorf("authorization denied")
	ErrMissingAuthCode  = fmt.Errorf("missing authorization code")
	ErrStateMismatch    = fmt.Errorf("state mismatch")
	ErrInvalidState     = fmt.Errorf("invalid state payload")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrNoRefreshToken   = fmt.Errorf("no refresh token available")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
