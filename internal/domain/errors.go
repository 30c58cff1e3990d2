package domain

import "errors"

var (
	// ErrInvalidRequest signals a malformed search request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidKind signals an unknown entity kind or type filter.
	ErrInvalidKind = errors.New("invalid kind")
	// ErrInvalidTenant signals a missing or malformed tenant scope.
	ErrInvalidTenant = errors.New("invalid tenant scope")
	// ErrSearchUnavailable signals that every selected collection failed.
	ErrSearchUnavailable = errors.New("search is currently unavailable")
)
