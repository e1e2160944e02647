package repository

import (
	"errors"
	"fmt"
)

// ErrDayTaken is returned by Insert when the day already has a workout.
var ErrDayTaken = errors.New("a workout is already recorded for that day")

// ErrorKind splits storage failures into reads and writes.
type ErrorKind int

const (
	KindRead ErrorKind = iota + 1
	KindWrite
)

func (k ErrorKind) String() string {
	switch k {
	case KindRead:
		return "read"
	case KindWrite:
		return "write"
	default:
		return "unknown"
	}
}

// StorageError wraps a failed repository operation.
type StorageError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Kind, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsReadError reports whether err is a failed storage read.
func IsReadError(err error) bool { return hasKind(err, KindRead) }

// IsWriteError reports whether err is a failed storage write.
func IsWriteError(err error) bool { return hasKind(err, KindWrite) }

func hasKind(err error, k ErrorKind) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Kind == k
}

func readErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Kind: KindRead, Err: err}
}

func writeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Kind: KindWrite, Err: err}
}
