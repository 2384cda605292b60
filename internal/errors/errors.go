package errors

import (
	"errors"
)

// Sentinel errors for different categories
var (
	// ErrRateLimited - the completion API signalled a rate limit (retry with exponential backoff)
	ErrRateLimited = errors.New("rate limited")

	// ErrTransient - transient network fault (retry with a fixed short delay)
	ErrTransient = errors.New("transient error")

	// ErrInvalidInput - invalid input (report validation messages, no retry)
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound - resource not found (tool name, location)
	ErrNotFound = errors.New("not found")

	// ErrToolFailed - a tool reported a business failure or its executor faulted
	ErrToolFailed = errors.New("tool failed")

	// ErrInternal - internal error (surfaced as HTTP 500)
	ErrInternal = errors.New("internal error")
)
