package client

import (
	"errors"
)

// Key discriminates entries of a [Table]: an HTTP status code, or one
// of the symbolic cases [NoResponse] and [Wildcard].
type Key int

const (
	// NoResponse matches failures where no response was ever received.
	NoResponse Key = -1
	// Wildcard matches any status, or the absence of one, that has no
	// entry of its own.
	Wildcard Key = -2
)

// Table maps a [Key] to a constructor for the domain error. The
// constructor receives the actual status, or NoResponse.
type Table map[Key]func(status Key) error

// Classify converts err, raised by a failed dispatch, into the error
// table selects for it. Errors that did not come from the transport
// layer, and transport errors the table has no entry for, are returned
// unchanged. Classify never returns nil for a non-nil err.
func Classify(err error, table Table) error {
	if err == nil {
		return nil
	}

	var statusErr *UnexpectedStatusError
	if errors.As(err, &statusErr) {
		status := Key(statusErr.StatusCode)
		if fn := table[status]; fn != nil {
			return produce(fn, status, err)
		}
		if fn := table[Wildcard]; fn != nil {
			return produce(fn, status, err)
		}

		return err
	}

	if !noResponse(err) {
		return err
	}

	if fn := table[NoResponse]; fn != nil {
		return produce(fn, NoResponse, err)
	}
	if fn := table[Wildcard]; fn != nil {
		return produce(fn, NoResponse, err)
	}

	return err
}

// noResponse reports whether err is a round trip that left the client
// without a response. Errors raised before the request went out, such as
// a malformed route, are not.
func noResponse(err error) bool {
	var rtErr *roundTripError
	return errors.As(err, &rtErr)
}

func produce(fn func(Key) error, status Key, orig error) error {
	if out := fn(status); out != nil {
		return out
	}

	return orig
}
