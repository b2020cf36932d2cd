package tts

import (
	"errors"
	"fmt"
)

// Common errors for the speech system.
var (
	// Validation errors. These abort a request before engine selection.
	ErrEmptyText         = errors.New("text must be a non-empty string")
	ErrInvalidEchoConfig = errors.New("invalid echo configuration")

	// Configuration errors.
	ErrInvalidCloudVoice = errors.New("invalid cloud voice")
	ErrInvalidCloudModel = errors.New("invalid cloud model")
	ErrInvalidConfig     = errors.New("invalid configuration")

	// ErrCloudUnavailable means the cloud backend was invoked without a
	// configured credential. The selection policy never chooses cloud when
	// it is unavailable, so hitting this is a programming error; fallback
	// treats it like any other cloud failure.
	ErrCloudUnavailable = errors.New("cloud engine is not available: no API key configured")
)

// BackendError wraps a failure from one synthesis backend.
type BackendError struct {
	// Engine is the backend that failed.
	Engine EngineKind

	// StatusCode is the HTTP status for cloud API failures, 0 otherwise.
	StatusCode int

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s engine: %v (status %d)", e.Engine, e.Err, e.StatusCode)
	}
	return fmt.Sprintf("%s engine: %v", e.Engine, e.Err)
}

// Unwrap returns the underlying error.
func (e *BackendError) Unwrap() error {
	return e.Err
}

// backendError wraps err in a BackendError unless it already is one.
func backendError(engine EngineKind, err error) *BackendError {
	var be *BackendError
	if errors.As(err, &be) {
		return be
	}
	return &BackendError{Engine: engine, Err: err}
}
