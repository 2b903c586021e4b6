package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrBlocked  = errors.New("user is blocked")
	// ErrUnavailable marks store failures caused by timeouts or lost connectivity.
	ErrUnavailable = errors.New("store unavailable")
)
