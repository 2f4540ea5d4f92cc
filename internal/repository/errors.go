package repository

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrInvalidInput       = errors.New("invalid input data")
	ErrBackendUnavailable = errors.New("record storage unavailable")
	ErrPartialFailure     = errors.New("partial batch failure")
)

// BatchError reports the records of a multi-record write that the backend
// rejected. Messages holds one entry per failed record.
type BatchError struct {
	Op        string
	Succeeded int
	Messages  []string
}

func (e *BatchError) Error() string {
	msg := fmt.Sprintf("failed to %s %d record(s)", e.Op, len(e.Messages))
	if len(e.Messages) > 0 {
		msg += ": " + strings.Join(e.Messages, "; ")
	}
	return msg
}

func (e *BatchError) Unwrap() error {
	return ErrPartialFailure
}

// BackendError carries the message of a request the backend answered with
// success=false.
type BackendError struct {
	Op      string
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return e.Op + ": backend request failed"
	}
	return e.Message
}
