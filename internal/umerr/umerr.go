package umerr

import (
	"fmt"
	"strings"
)

// Error is the error type of upmon.
//
// Please use errors.Is or errors.Unwrap if you want to know what kind of
// error is it.
type Error struct {
	kind    error
	from    error
	message string
}

// New creates a new Error.
func New(kind error, from error, format string, args ...interface{}) Error {
	msg := fmt.Sprintf(format, args...)
	if from != nil {
		if msg != "" {
			msg += ": "
		}
		msg += from.Error()
	}

	return Error{
		kind:    kind,
		from:    from,
		message: msg,
	}
}

// Error implements error interface.
func (e Error) Error() string {
	return e.message
}

// Unwrap implement for errors.Unwrap.
func (e Error) Unwrap() error {
	return e.from
}

// Is implement for errors.Is.
func (e Error) Is(err error) bool {
	return e.kind == err
}

// List is a list of errors.
type List struct {
	// What is the error that describes what kind of errors is this.
	What error

	// Children is the detail errors in this error list.
	Children []error
}

// Error implements error interface.
func (l List) Error() string {
	ss := make([]string, 0, len(l.Children)+1)
	ss = append(ss, l.What.Error()+":")

	for _, e := range l.Children {
		for _, s := range strings.Split(e.Error(), "\n") {
			ss = append(ss, "  "+s)
		}
	}

	return strings.Join(ss, "\n")
}

// Unwrap implement for errors.Unwrap.
func (l List) Unwrap() error {
	return l.What
}
