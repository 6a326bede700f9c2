// Package services defines the business logic of the quote selection core.
// This file centralizes the service-level error values and the error kinds
// callers use to decide user-facing behavior.
//
// Translation into HTTP status codes or scheduler results is performed by the
// caller (handlers, scheduler), never here.
package services

import (
	"context"
	"errors"
)

// Daily quote errors.
var (
	// ErrNoQuotes indicates the catalog is empty, so no daily quote can be selected.
	ErrNoQuotes = errors.New("no quotes available for selection")

	// ErrNoActiveRecord indicates no daily quote record is currently active.
	ErrNoActiveRecord = errors.New("no active daily quote")
)

// Engagement errors.
var (
	// ErrQuoteNotFound indicates the referenced quote does not exist.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrInvalidEngagement is returned for an unknown engagement kind.
	ErrInvalidEngagement = errors.New("invalid engagement kind")
)

// Kind classifies an error for callers.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindInternal   Kind = "internal"
	KindValidation Kind = "validation"
	KindTimeout    Kind = "timeout"
)

// KindOf returns the Kind of err. Unknown errors are internal; nil has no kind.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoQuotes), errors.Is(err, ErrNoActiveRecord), errors.Is(err, ErrQuoteNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidEngagement):
		return KindValidation
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	default:
		return KindInternal
	}
}
