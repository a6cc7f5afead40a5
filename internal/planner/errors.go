package planner

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTopic is returned by Generate when the topic is blank.
	// No request is sent.
	ErrEmptyTopic = errors.New("topic is required")

	// ErrEmptyFeedback is returned by Refine when the feedback is blank.
	// No request is sent.
	ErrEmptyFeedback = errors.New("feedback is required")
)

// GenerationError reports a failed plan generation.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate lesson plan: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// RefinementError reports a failed plan refinement.
type RefinementError struct {
	Err error
}

func (e *RefinementError) Error() string {
	return fmt.Sprintf("refine lesson plan: %v", e.Err)
}

func (e *RefinementError) Unwrap() error { return e.Err }
