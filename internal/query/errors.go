// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks a required setting, usually the API
	// credential, as missing or unusable.
	ErrConfiguration = errors.New("configuration error")

	// ErrState marks an operation invoked before its prerequisite, such as
	// submitting before a query is rendered.
	ErrState = errors.New("invalid state")
)

// ConfigurationError names the setting that is missing.
type ConfigurationError struct {
	Setting string
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Setting, e.Message)
}

// Unwrap returns ErrConfiguration for use with errors.Is.
func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// StateError describes an out-of-order call.
type StateError struct {
	Op     string
	Reason string
}

// Error implements the error interface.
func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s: %s", e.Op, e.Reason)
}

// Unwrap returns ErrState for use with errors.Is.
func (e *StateError) Unwrap() error {
	return ErrState
}
