package domain

import "errors"

var (
	// ErrSessionNotFound signals a missing browse session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrFilterSetNotFound signals a missing saved filter set.
	ErrFilterSetNotFound = errors.New("filter set not found")
	// ErrInvalidFilterSet signals a filter set failing validation.
	ErrInvalidFilterSet = errors.New("invalid filter set")
	// ErrInvalidFacet signals an invalid facet definition.
	ErrInvalidFacet = errors.New("invalid facet definition")
	// ErrInvalidRange signals a range edit where min exceeds max.
	ErrInvalidRange = errors.New("invalid range bounds")
	// ErrSearchUnavailable signals that the search pipeline failed or timed out.
	ErrSearchUnavailable = errors.New("search unavailable")
)
