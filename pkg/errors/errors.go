package errors

import (
	"errors"
	"fmt"
)

var (
	// validation; returned synchronously before a job is queued
	ErrNotFound      = fmt.Errorf("not found")
	ErrInvalidArg    = fmt.Errorf("invalid arg")
	ErrMissingField  = fmt.Errorf("missing required field")
	ErrInvalidState  = fmt.Errorf("invalid state")
	ErrMaxRetries    = fmt.Errorf("max retries exceeded")
	ErrMaxExceeded   = fmt.Errorf("max length exceeded")
	ErrInvalidFormat = fmt.Errorf("invalid template")

	// job pipeline
	ErrRender    = fmt.Errorf("render failed")
	ErrUpload    = fmt.Errorf("image upload failed")
	ErrRemote    = fmt.Errorf("compute server error")
	ErrExecution = fmt.Errorf("execution error")
	ErrTimeout   = fmt.Errorf("timed out")
	ErrNoMedia   = fmt.Errorf("no media returned")
	ErrCancelled = fmt.Errorf("cancelled")

	// ErrPermanent marks a failure that retrying the same attempt cannot fix.
	ErrPermanent = fmt.Errorf("permanent")
)

// Machine readable codes recorded on failed jobs.
const (
	CodeValidation = "VALIDATION"
	CodeRender     = "RENDER_ERROR"
	CodeUpload     = "UPLOAD_ERROR"
	CodeRemote     = "REMOTE_ERROR"
	CodeExecution  = "EXECUTION_ERROR"
	CodeTimeout    = "TIMEOUT"
	CodeNoMedia    = "NO_MEDIA"
	CodeCancelled  = "CANCELLED"
	CodeInternal   = "INTERNAL"
)

// Code returns the machine code for an error chain.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return CodeTimeout
	case errors.Is(err, ErrCancelled):
		return CodeCancelled
	case errors.Is(err, ErrRender), errors.Is(err, ErrInvalidFormat):
		return CodeRender
	case errors.Is(err, ErrUpload):
		return CodeUpload
	case errors.Is(err, ErrExecution):
		return CodeExecution
	case errors.Is(err, ErrRemote):
		return CodeRemote
	case errors.Is(err, ErrNoMedia):
		return CodeNoMedia
	case errors.Is(err, ErrInvalidArg), errors.Is(err, ErrMissingField), errors.Is(err, ErrNotFound):
		return CodeValidation
	default:
		return CodeInternal
	}
}

// Permanent wraps err so that the queue will not retry the attempt.
func Permanent(err error) error {
	if err == nil || errors.Is(err, ErrPermanent) {
		return err
	}
	return fmt.Errorf("%w (%w)", err, ErrPermanent)
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrPermanent)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
