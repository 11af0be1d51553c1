package serialize

import (
	"errors"
	"fmt"
)

var (
	// ErrNilWriter is returned by New when no output sink is given.
	ErrNilWriter = errors.New("serialize: writer must not be nil")

	// ErrNilPolicy is returned by New when no policy is given.
	ErrNilPolicy = errors.New("serialize: policy must not be nil")

	// ErrUnsafeComment is returned when comment guarding is enabled and a
	// preserved comment body could terminate the comment early.
	ErrUnsafeComment = errors.New("comment body could close the comment")
)

// Error describes a failed serialization step. Once a Serializer has
// returned an Error it returns the same Error from every later call.
type Error struct {
	Op  string // "start", "end", "text" or "comment"
	Tag string // element involved, if any
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("serialize %s <%s>: %v", e.Op, e.Tag, e.Err)
	}
	return fmt.Sprintf("serialize %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
