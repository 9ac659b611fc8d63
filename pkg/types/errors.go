package types

import "errors"

// Resolution and link errors.
var (
	ErrUnknownType = errors.New("unknown object type")
	ErrInvalidLink = errors.New("invalid link")
	ErrNotFound    = errors.New("object not found")
)

// Remote client errors.
var (
	ErrAccessDenied = errors.New("access denied")
	ErrNotConnected = errors.New("not connected")
)

// Session errors.
var (
	ErrNoSudo = errors.New("no sudo session is active")
)

// Table registry errors.
var (
	ErrUnknownTable   = errors.New("table does not exist")
	ErrEmptyTable     = errors.New("table is empty")
	ErrNoInputRows    = errors.New("no input rows")
	ErrColumnMismatch = errors.New("column count mismatch")
)

// Key-value lookup errors.
var (
	ErrKeyNotFound = errors.New("key not found")
)
