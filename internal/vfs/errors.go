package vfs

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Kind classifies a filesystem failure.
type Kind int

const (
	KindOther Kind = iota
	KindNotFound
	KindCrossDevice
	KindAlreadyExists
	KindPermission
)

// Sentinel errors, one per Kind. Any *Error matches the sentinel of its
// kind under errors.Is.
var (
	ErrNotFound      = errors.New("no such file or directory")
	ErrCrossDevice   = errors.New("cross-device move")
	ErrAlreadyExists = errors.New("file already exists")
	ErrPermission    = errors.New("permission denied")
)

// ErrSourceRemains marks a fallback move whose copy completed but whose
// source could not be removed afterwards.
var ErrSourceRemains = errors.New("source not removed after copy")

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindCrossDevice:
		return "cross_device"
	case KindAlreadyExists:
		return "already_exists"
	case KindPermission:
		return "permission"
	default:
		return "other"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindCrossDevice:
		return ErrCrossDevice
	case KindAlreadyExists:
		return ErrAlreadyExists
	case KindPermission:
		return ErrPermission
	default:
		return nil
	}
}

// Error is returned by every FileSystem implementation.
type Error struct {
	Op   string
	Path string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// NewError builds an *Error whose cause is the sentinel of kind.
func NewError(op, path string, kind Kind) *Error {
	err := kind.sentinel()
	if err == nil {
		err = errors.New("operation failed")
	}
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}

// Errorf builds a KindOther *Error with a formatted cause.
func Errorf(op, path, format string, args ...any) *Error {
	return &Error{Op: op, Path: path, Kind: KindOther, Err: fmt.Errorf(format, args...)}
}

// Classify wraps a backend error into an *Error, mapping well-known causes
// onto kinds. Errors that already are *Error are returned unchanged.
func Classify(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Op: op, Path: path, Kind: classify(err), Err: err}
}

// KindOf returns the kind of err, classifying foreign errors on the fly.
func KindOf(err error) Kind {
	if err == nil {
		return KindOther
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return classify(err)
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, syscall.EXDEV):
		return KindCrossDevice
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrExist):
		return KindAlreadyExists
	case errors.Is(err, fs.ErrPermission):
		return KindPermission
	default:
		return KindOther
	}
}

// withOp re-labels an *Error with the caller's op and path, keeping its
// kind and cause. Other errors are returned unchanged.
func withOp(op, path string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return &Error{Op: op, Path: path, Kind: e.Kind, Err: e.Err}
	}
	return err
}
