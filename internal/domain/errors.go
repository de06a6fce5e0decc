package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrServerOffline indicates the catalog server is unreachable
	ErrServerOffline = errors.New("catalog server is unreachable")

	// ErrUnexpectedStatus indicates the server answered with a non-2xx status
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrNotConfigured indicates no server URL has been configured
	ErrNotConfigured = errors.New("catalog server URL is not configured")
)
