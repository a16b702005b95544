// Package domain defines domain-specific errors.
package domain

import (
	"errors"
	"fmt"
)

// Common errors returned by the observable collaborators.
// The producers themselves never return errors: start/stop are defined
// no-ops in every invalid state.
var (
	// ErrClosed is returned when an operation is attempted on a closed collaborator.
	ErrClosed = errors.New("already closed")

	// ErrInvalidFilePath is returned when a file path is invalid or unreadable.
	ErrInvalidFilePath = errors.New("invalid file path")
)

// EngineError represents a playback failure reported by the media engine.
// It is forwarded inside an EndedPlayingEvent, never returned by a producer.
type EngineError struct {
	Op      string // Operation that failed (e.g., "buffer", "decode")
	Message string // Error message
	Err     error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return fmt.Sprintf("engine %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates a new EngineError.
func NewEngineError(op, message string, err error) *EngineError {
	return &EngineError{
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// MetadataError represents a failure while reading metadata for an item.
type MetadataError struct {
	Path    string // File the metadata was read from
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *MetadataError) Error() string {
	return fmt.Sprintf("metadata read failed for '%s': %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *MetadataError) Unwrap() error {
	return e.Err
}

// NewMetadataError creates a new MetadataError.
func NewMetadataError(path, message string, err error) *MetadataError {
	return &MetadataError{
		Path:    path,
		Message: message,
		Err:     err,
	}
}
