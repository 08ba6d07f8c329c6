package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

var (
	// ErrHangTimeout is returned when a supervised operation shows no activity for longer than its budget.
	ErrHangTimeout = zerr.New("operation hung")

	// ErrCancelled is returned when a traversal observes a cancelled context at a checkpoint.
	ErrCancelled = zerr.New("operation cancelled")

	// ErrUnknownLastChanged is returned when the modification time of a node cannot be determined.
	ErrUnknownLastChanged = zerr.New("unknown last modification time")

	// ErrEnvironmentFailure is returned when listing a directory fails or the path has the wrong type.
	ErrEnvironmentFailure = zerr.New("environment failure")

	// ErrNotDeleted is returned by the strict delete when the root path survived.
	ErrNotDeleted = zerr.New("path was not deleted")

	// ErrInvalidTiming is returned when timing parameters violate their constraints.
	ErrInvalidTiming = zerr.New("invalid timing parameters")

	// ErrInvalidFilter is returned when a glob filter pattern is malformed.
	ErrInvalidFilter = zerr.New("invalid filter pattern")

	// ErrOverlappingPaths is returned when concurrent deletions were requested over nested paths.
	ErrOverlappingPaths = zerr.New("overlapping paths")

	// ErrNoCommand is returned when a supervised command has no argv.
	ErrNoCommand = zerr.New("no command specified")

	// ErrRemovalIncomplete is returned when a drain left paths in the removal journal.
	ErrRemovalIncomplete = zerr.New("removal incomplete")
)

// Kind classifies an operational failure.
type Kind int

const (
	// KindUnknown is any error that is not an *OpError.
	KindUnknown Kind = iota
	// KindHang marks an operation that exceeded its inactivity budget.
	KindHang
	// KindCancelled marks an operation that stopped at a cancellation checkpoint.
	KindCancelled
	// KindUnknownLastChanged marks a modification time that could not be read.
	KindUnknownLastChanged
	// KindEnvironment marks a failed or mistyped directory listing.
	KindEnvironment
)

func (k Kind) String() string {
	switch k {
	case KindHang:
		return "hang"
	case KindCancelled:
		return "cancelled"
	case KindUnknownLastChanged:
		return "unknown-last-changed"
	case KindEnvironment:
		return "environment"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindHang:
		return ErrHangTimeout
	case KindCancelled:
		return ErrCancelled
	case KindUnknownLastChanged:
		return ErrUnknownLastChanged
	case KindEnvironment:
		return ErrEnvironmentFailure
	default:
		return nil
	}
}

// OpError is the single error type raised by supervised operations and tree algorithms.
// errors.Is matches it against the sentinel of its Kind.
type OpError struct {
	Kind      Kind
	Operation string
	Path      string
	Reason    string
	Elapsed   time.Duration
	Err       error
}

func (e *OpError) Error() string {
	var b strings.Builder
	if s := e.Kind.sentinel(); s != nil {
		b.WriteString(s.Error())
	} else {
		b.WriteString("operation failed")
	}
	if e.Operation != "" {
		fmt.Fprintf(&b, " in %s", e.Operation)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " at '%s'", e.Path)
	}
	if e.Elapsed > 0 {
		fmt.Fprintf(&b, " after %s of inactivity", e.Elapsed)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause, usually an OS error.
func (e *OpError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of this error's kind.
func (e *OpError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the kind of the first *OpError in err's chain.
func KindOf(err error) Kind {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	return KindUnknown
}

// NewHangTimeout reports that operation was inactive for elapsed.
func NewHangTimeout(operation string, elapsed time.Duration) *OpError {
	return &OpError{Kind: KindHang, Operation: operation, Elapsed: elapsed}
}

// NewCancelled reports a cancellation observed while processing path.
func NewCancelled(path string, cause error) *OpError {
	return &OpError{Kind: KindCancelled, Path: path, Err: cause}
}

// NewUnknownLastChanged reports that the modification time of path is unavailable.
func NewUnknownLastChanged(path string, cause error) *OpError {
	return &OpError{
		Kind:   KindUnknownLastChanged,
		Path:   path,
		Reason: fmt.Sprintf("Can not get the last modification date of '%s'.", path),
		Err:    cause,
	}
}

// NewEnvironmentFailure reports a listing failure of path.
func NewEnvironmentFailure(path, reason string, cause error) *OpError {
	return &OpError{Kind: KindEnvironment, Path: path, Reason: reason, Err: cause}
}
