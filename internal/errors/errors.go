package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/labcita/internal/appointments"
	"github.com/julianstephens/labcita/internal/logger"
)

const (
	// ExitFailure is used for unexpected failures (storage, I/O).
	ExitFailure = 1
	// ExitRejected is used when a command was refused by appointment validation.
	ExitRejected = 2
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// IsRejection reports whether err is a recoverable validation outcome of the
// appointment workflow rather than a failure of the tool itself.
func IsRejection(err error) bool {
	for _, target := range []error{
		appointments.ErrMissingFields,
		appointments.ErrSlotConflict,
		appointments.ErrInvalidDate,
		appointments.ErrPastDate,
		appointments.ErrInvalidTime,
		appointments.ErrUnknownLab,
		appointments.ErrUnknownExam,
		appointments.ErrInvalidTransition,
		appointments.ErrNotFound,
	} {
		if stderrors.Is(err, target) {
			return true
		}
	}
	return false
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if IsRejection(err) {
		return ExitRejected
	}
	return ExitFailure
}

// Fatal logs an error and exits the program with the code from ExitCode
func Fatal(err error) {
	if err != nil {
		if IsRejection(err) {
			logger.Warn("Command rejected", "error", err)
		} else {
			logger.Error("Command execution failed", "error", err)
		}
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(ExitCode(err))
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(ExitFailure)
}
