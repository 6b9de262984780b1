// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for Libris.

It provides a rich error type that bridges the gap between low-level domain,
storage and upstream errors and the JSON responses written by the HTTP layer.

Architecture:

  - AppError: A struct containing a machine-readable Code and a client-safe message.
  - Mapping: Every AppError carries the HTTP status it should be rendered with.
  - Domain kinds: Catalog-specific codes (INVALID_ISBN, EBOOK_TYPE, ...) live next
    to the generic ones so handlers never need to know which layer failed.

Every error that leaves the service layer should be an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Codes

// Stable machine-readable identifiers. Clients match on these, never on messages.
const (
	CodeNotFound            = "NOT_FOUND"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeConflict            = "CONFLICT"
	CodeValidation          = "VALIDATION_ERROR"
	CodeRateLimited         = "RATE_LIMITED"
	CodeUnprocessable       = "UNPROCESSABLE"
	CodeInternal            = "INTERNAL_ERROR"
	CodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
	CodeInvalidISBN         = "INVALID_ISBN"
	CodeAlreadyRegistered   = "VOLUME_ALREADY_REGISTERED"
	CodeEmptyAPIResponse    = "EMPTY_API_RESPONSE"
	CodeEbookType           = "EBOOK_TYPE"
	CodeInvalidUserInput    = "INVALID_USER_INPUT"
	CodeMetadataUnavailable = "METADATA_UNAVAILABLE"
	CodeMetadataTimeout     = "METADATA_TIMEOUT"
)

// AppError is the canonical error type for the Libris API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and optional field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "EBOOK_TYPE").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// ResourceID identifies an existing resource the caller should use instead
	// (e.g. the volume that already owns an ISBN).
	ResourceID string `json:"resource_id,omitempty"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause returns a copy of e that records cause for server-side logging.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Volume") // Returns "Volume not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// Unprocessable creates a 422 [AppError] for semantically invalid input.
func Unprocessable(msg string) *AppError {
	return &AppError{
		Code:       CodeUnprocessable,
		Message:    msg,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// # Catalog Errors

// InvalidISBN creates a 400 [AppError] for input that is neither an ISBN-10 nor an ISBN-13.
func InvalidISBN(raw string) *AppError {
	return &AppError{
		Code:       CodeInvalidISBN,
		Message:    fmt.Sprintf("%q is not a valid ISBN-10 or ISBN-13", raw),
		HTTPStatus: http.StatusBadRequest,
	}
}

// AlreadyRegistered creates a 409 [AppError] pointing at the volume that already owns the ISBN.
func AlreadyRegistered(existingID string) *AppError {
	return &AppError{
		Code:       CodeAlreadyRegistered,
		Message:    "A volume with this ISBN is already registered",
		HTTPStatus: http.StatusConflict,
		ResourceID: existingID,
	}
}

// EmptyAPIResponse creates a 404 [AppError] for an ISBN the metadata source does not know.
func EmptyAPIResponse(isbn string) *AppError {
	return &AppError{
		Code:       CodeEmptyAPIResponse,
		Message:    fmt.Sprintf("No metadata found for ISBN %s", isbn),
		HTTPStatus: http.StatusNotFound,
	}
}

// EbookType creates a 422 [AppError]. The catalog only accepts physical volumes.
func EbookType(isbn string) *AppError {
	return &AppError{
		Code:       CodeEbookType,
		Message:    fmt.Sprintf("ISBN %s refers to an e-book", isbn),
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// InvalidUserInput creates a 400 [AppError] for search parameters outside accepted bounds.
func InvalidUserInput(msg string) *AppError {
	return &AppError{
		Code:       CodeInvalidUserInput,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ServiceUnavailable creates a 503 [AppError] for maintenance mode.
func ServiceUnavailable(msg string) *AppError {
	return &AppError{
		Code:       CodeServiceUnavailable,
		Message:    msg,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// MetadataUnavailable creates a 502 [AppError] for a failed call to the metadata source.
// The failure is transient and the caller may resubmit.
func MetadataUnavailable(cause error) *AppError {
	return &AppError{
		Code:       CodeMetadataUnavailable,
		Message:    "The metadata source is currently unavailable",
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// MetadataTimeout creates a 504 [AppError] for a metadata lookup that exceeded its deadline.
func MetadataTimeout(cause error) *AppError {
	return &AppError{
		Code:       CodeMetadataTimeout,
		Message:    "The metadata source did not answer in time",
		HTTPStatus: http.StatusGatewayTimeout,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err's chain contains an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
