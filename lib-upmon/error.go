package upmon

import (
	"errors"
)

var (
	// ErrCommunicate is the error means failed to communicate with the
	// upmon server.
	ErrCommunicate = errors.New("failed to communicate with upmon server")

	// ErrUnauthorized is the error means the server rejected the bearer
	// token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnknownService is the error means the service is not one of the
	// monitored set.
	ErrUnknownService = errors.New("unknown service")

	// ErrInvalidArgument is the error means the argument on the command
	// line is wrong.
	ErrInvalidArgument = errors.New("invalid argument")
)
