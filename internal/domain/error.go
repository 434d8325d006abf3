package domain

import "errors"

var (
	// ErrInvalidSelection means the selection is missing a field or has a non-positive amount.
	ErrInvalidSelection = errors.New("selection incomplete or amount not positive")

	// ErrNoRoutes means the quoting backend answered without any usable route.
	ErrNoRoutes = errors.New("no routes available")

	// ErrUnknownPolicy means the requested ranking policy is not one of optimal, fastest, most_tokens.
	ErrUnknownPolicy = errors.New("unknown ranking policy")

	// ErrRouteNotFound means a route with the requested bridge id is not in the current result set.
	ErrRouteNotFound = errors.New("route not found")
)
