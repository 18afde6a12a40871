package model

import (
	"errors"
	"fmt"
)

// UsageError reports malformed arguments. It is detected before any
// mutation.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// NewUsageError creates a UsageError with a formatted message.
func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// DuplicateError reports an add of a (topic, query) pair that is already
// tracked.
type DuplicateError struct {
	ExistingID int64
	Topic      string
	Query      string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("topic/query already exists, ID=%d", e.ExistingID)
}

// NotFoundError reports a topic id that is not in the registry.
// Batch operations collect these per id instead of aborting.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found, ID=%d", e.ID)
}

// RemoteError wraps a failure of the remote search capability.
type RemoteError struct {
	Query string
	Err   error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("search %q: %v", e.Query, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// StorageError wraps a failure of the store during a run.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsUsageError returns true if err is or wraps a UsageError.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// IsDuplicateError returns true if err is or wraps a DuplicateError.
func IsDuplicateError(err error) bool {
	var de *DuplicateError
	return errors.As(err, &de)
}

// IsNotFoundError returns true if err is or wraps a NotFoundError.
func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsRemoteError returns true if err is or wraps a RemoteError.
func IsRemoteError(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}

// IsStorageError returns true if err is or wraps a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
