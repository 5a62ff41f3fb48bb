package usecase

import "errors"

// Sentinels shared by all services. The HTTP layer maps them onto
// response status codes, everything else wraps them with context via
// fmt.Errorf("%w: ...").
var (
	// ErrInvalidInput covers malformed requests and rule violations
	// (roster or lineup constraint failures wrap it together with the
	// violation list).
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound covers unknown leagues, teams, riders, and races.
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthorized covers missing principals and foreign-team
	// writes.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDependencyUnavailable covers provider outages and disabled
	// integrations.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
