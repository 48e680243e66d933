package errors

import (
	"errors"
	"fmt"
)

// Exit codes for devenv-ctl
const (
	ExitSuccess       = 0
	ExitGeneralError  = 1
	ExitHelp          = 2
	ExitValidation    = 3
	ExitConfiguration = 4
	ExitComposeFailed = 5
)

// Kind classifies a resolution failure.
type Kind int

const (
	// KindGeneral covers failures outside the resolution taxonomy.
	KindGeneral Kind = iota
	// KindHelp signals that usage was requested and printed.
	KindHelp
	// KindValidation means the user-supplied invocation is bad, missing,
	// or conflicting. Correcting the flags fixes it.
	KindValidation
	// KindConfiguration means required ambient environment or host state
	// is missing. The setup, not the flags, is wrong.
	KindConfiguration
	// KindCompose means the orchestration command itself failed.
	KindCompose
)

// DevEnvError is the base error type for devenv-ctl
type DevEnvError struct {
	Kind    Kind
	Code    int
	Message string
	Cause   error
}

func (e *DevEnvError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DevEnvError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *DevEnvError) ExitCode() int {
	return e.Code
}

// Validation returns an error for bad, missing, or conflicting user input.
// The message must be fully formatted; it is shown to the user verbatim.
func Validation(format string, args ...any) *DevEnvError {
	return &DevEnvError{
		Kind:    KindValidation,
		Code:    ExitValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// Configuration returns an error for missing ambient environment or host state.
func Configuration(format string, args ...any) *DevEnvError {
	return &DevEnvError{
		Kind:    KindConfiguration,
		Code:    ExitConfiguration,
		Message: fmt.Sprintf(format, args...),
	}
}

// ComposeFailed returns an error for a failed orchestration command.
func ComposeFailed(op string, cause error) *DevEnvError {
	return &DevEnvError{
		Kind:    KindCompose,
		Code:    ExitComposeFailed,
		Message: fmt.Sprintf("docker compose %s failed", op),
		Cause:   cause,
	}
}

// HelpRequested returns the sentinel error for the help exit path.
func HelpRequested() *DevEnvError {
	return &DevEnvError{
		Kind:    KindHelp,
		Code:    ExitHelp,
		Message: "help requested",
	}
}

// New creates a general error with the given exit code.
func New(code int, message string) *DevEnvError {
	return &DevEnvError{Kind: KindGeneral, Code: code, Message: message}
}

// Wrap wraps an existing error with a general DevEnvError.
func Wrap(code int, message string, cause error) *DevEnvError {
	return &DevEnvError{Kind: KindGeneral, Code: code, Message: message, Cause: cause}
}

// kindOf extracts the Kind from an error chain.
func kindOf(err error) (Kind, bool) {
	var devErr *DevEnvError
	if errors.As(err, &devErr) {
		return devErr.Kind, true
	}
	return KindGeneral, false
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindValidation
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindConfiguration
}

// IsHelp reports whether err is the help sentinel.
func IsHelp(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindHelp
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var devErr *DevEnvError
	if errors.As(err, &devErr) {
		return devErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
