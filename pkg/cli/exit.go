package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stefanpenner/bujo/pkg/store"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation failed (not found, bad date, corrupt or unwritable data file)
	ExitCommandError = 2 // Usage error or missing data directory
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message; empty means use Err's
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	switch {
	case e.Message == "" && e.Err != nil:
		return e.Err.Error()
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// classify attaches the exit code for a core error.
func classify(err error) error {
	var exitErr *ExitError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		return err
	case errors.Is(err, store.ErrStorageMissing):
		return &ExitError{Code: ExitCommandError, Err: err}
	default:
		return &ExitError{Code: ExitFailure, Err: err}
	}
}

// usageArgs marks positional argument failures as usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &ExitError{Code: ExitCommandError, Err: err}
		}
		return nil
	}
}
