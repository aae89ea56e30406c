// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates an alias or record is already owned by someone else.
var ErrConflict = errors.New("conflict")

// ErrValidation wraps input that failed a domain rule. Handlers strip the
// prefix and return the remaining message to the client.
var ErrValidation = errors.New("validation failed")

// ErrUnsupportedFormat is returned for uploads that cannot be parsed as text.
var ErrUnsupportedFormat = errors.New("unsupported format")
