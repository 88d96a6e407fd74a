package core

import "errors"

var (
	// ErrWrongType is returned on an operation against a key holding the wrong kind of value
	ErrWrongType = errors.New("wrong kind of value")

	// ErrNotFound is returned when the requested key is not in the keyspace
	ErrNotFound = errors.New("key not found")

	// ErrInvalidParams is returned on semantically invalid operation parameters
	ErrInvalidParams = errors.New("invalid parameters")
)
