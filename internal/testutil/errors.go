// Package testutil provides testing utilities for devops.
//
// This package contains mock errors used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
var (
	// ErrMockSFFailed indicates a mock sf command failed.
	ErrMockSFFailed = errors.New("sf command failed")

	// ErrMockNetwork indicates a mock network error occurred.
	ErrMockNetwork = errors.New("network error")
)
