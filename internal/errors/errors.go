// Package errors provides centralized error handling for devops.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrInvalidDocument indicates a deploy status payload could not be parsed
	// as JSON or YAML.
	ErrInvalidDocument = errors.New("invalid deploy status document")

	// ErrDeploymentIDRequired indicates no deployment id was supplied.
	ErrDeploymentIDRequired = errors.New("deployment id is required")

	// ErrInvalidDeploymentID indicates the deployment id is not a 15 or 18
	// character record id.
	ErrInvalidDeploymentID = errors.New("invalid deployment id")

	// ErrSourceUnavailable indicates no configured deploy status source can be used
	// (sf CLI missing, no REST instance configured, no file directory).
	ErrSourceUnavailable = errors.New("deploy status source unavailable")

	// ErrFetchFailed indicates the deploy status request failed.
	ErrFetchFailed = errors.New("deploy status fetch failed")

	// ErrDeploymentNotFound indicates the platform has no deployment with the given id.
	ErrDeploymentNotFound = errors.New("deployment not found")

	// ErrDeploymentsFailed indicates that some of the requested deployments
	// could not be reported.
	ErrDeploymentsFailed = errors.New("deployments failed")

	// ErrUnauthorized indicates the platform rejected the session or token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidOutput indicates an invalid output configuration value.
	ErrConfigInvalidOutput = errors.New("invalid output configuration")

	// ErrConfigInvalidSource indicates an invalid source configuration value.
	ErrConfigInvalidSource = errors.New("invalid source configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrCommandFailed indicates that an external command execution failed.
	ErrCommandFailed = errors.New("command failed")

	// ErrCommandNotConfigured indicates that a mock command was not configured in tests.
	ErrCommandNotConfigured = errors.New("command not configured")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
