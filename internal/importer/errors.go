// internal/importer/errors.go
package importer

import "errors"

var (
	// ErrUnknownProtocol indicates no factory is registered for the
	// source's importer protocol.
	ErrUnknownProtocol = errors.New("unknown importer protocol")

	// ErrDuplicateProtocol indicates the protocol is already registered.
	ErrDuplicateProtocol = errors.New("importer protocol already registered")

	// ErrInvalidProtocol indicates a malformed protocol identifier.
	ErrInvalidProtocol = errors.New("invalid importer protocol")
)
