package domain

import "errors"

// Domain errors represent failures the CLI must distinguish.
// Adapters wrap them with context; callers classify with errors.Is.
var (
	// ErrNotFound indicates a requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSegmentNotFound indicates a resource path lacks a named segment.
	ErrSegmentNotFound = errors.New("resource path segment not found")

	// Configuration Errors.

	// ErrProjectRequired indicates no project ID could be resolved.
	ErrProjectRequired = errors.New("project ID is required")

	// Authentication Errors.

	// ErrAuth indicates the credential source is unreachable or rejected the request.
	ErrAuth = errors.New("authentication failed")

	// Resource Service Errors.

	// ErrAPIDisabled indicates the resource service answered 403.
	// This usually means the Discovery Engine API is not enabled for the project.
	ErrAPIDisabled = errors.New("discovery engine API not enabled")

	// ErrTransport indicates a network failure, an unexpected status or an undecodable body.
	ErrTransport = errors.New("transport error")

	// Operation Errors.

	// ErrOperationFailed indicates a polled operation completed with an error field.
	ErrOperationFailed = errors.New("operation failed")

	// ErrOperationTimeout indicates the polling budget ran out before the operation completed.
	ErrOperationTimeout = errors.New("operation timed out")

	// ErrUnresolvedName indicates a completed operation carried no usable resource name.
	ErrUnresolvedName = errors.New("could not resolve resource name from operation")
)
