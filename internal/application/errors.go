package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound        = errors.New("not found")
	ErrNotANote        = errors.New("not a markdown note")
	ErrNoTargetFolder  = errors.New("target folder not configured")
	ErrDepthOutOfRange = errors.New("max depth out of range")
)

// ValidationError represents a pre-flight validation failure with details.
// Validation failures short-circuit the whole publish call before any I/O.
type ValidationError struct {
	Field   string
	Message string
	Err     error // optional sentinel for errors.Is matching
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return e.Err != nil && target == e.Err
}

// NodeError represents a per-document failure during the walk. It is folded
// into the result's error list, never propagated; the walk continues.
type NodeError struct {
	Path string
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("Error processing %s: %v", e.Path, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}
