package errors

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCorpus      = errors.New("corpus is empty")
	ErrEmptyQuerySet    = errors.New("query set is empty")
	ErrWorkerFailure    = errors.New("worker failure")
	ErrDegenerateVector = errors.New("zero-norm vector")
	ErrPoolClosed       = errors.New("worker pool closed")
	ErrInvalidInput     = errors.New("invalid input")
	ErrTimeout          = errors.New("operation timed out")
)

// Exit codes reported by the CLI for each error class.
const (
	ExitOK           = 0
	ExitInvalidInput = 1
	ExitEmptyInput   = 2
	ExitWorker       = 3
	ExitInternal     = 4
)

type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, message string) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: message,
	}
}

func Newf(sentinel error, format string, args ...any) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: fmt.Sprintf(format, args...),
	}
}

// ExitCode maps an error to the process exit code the CLI should use.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrEmptyCorpus), errors.Is(err, ErrEmptyQuerySet):
		return ExitEmptyInput
	case errors.Is(err, ErrInvalidInput):
		return ExitInvalidInput
	case errors.Is(err, ErrWorkerFailure), errors.Is(err, ErrTimeout):
		return ExitWorker
	default:
		return ExitInternal
	}
}
