package domain

import (
	"context"
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ValidationErrorKind ErrorKind = "validation"
	UpstreamErrorKind   ErrorKind = "upstream"
	TimeoutErrorKind    ErrorKind = "timeout"
)

// PipelineError is the single failure signal a pipeline run surfaces to its caller.
type PipelineError struct {
	Kind    ErrorKind
	Stage   string
	Message string
	Err     error
}

func (e *PipelineError) Error() string {
	msg := e.Message
	if e.Stage != "" {
		msg = e.Stage + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, msg)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) error {
	return &PipelineError{Kind: ValidationErrorKind, Message: message}
}

func NewUpstreamError(stage string, message string, err error) error {
	return &PipelineError{Kind: UpstreamErrorKind, Stage: stage, Message: message, Err: err}
}

func NewTimeoutError(stage string, message string, err error) error {
	return &PipelineError{Kind: TimeoutErrorKind, Stage: stage, Message: message, Err: err}
}

// KindOf classifies any error returned by the pipeline. Bare context errors count as timeouts,
// anything unrecognised as an upstream failure.
func KindOf(err error) ErrorKind {
	var pipelineErr *PipelineError
	if errors.As(err, &pipelineErr) {
		return pipelineErr.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return TimeoutErrorKind
	}
	return UpstreamErrorKind
}

// AsStageError keeps an existing PipelineError as is and wraps anything else for the given stage.
func AsStageError(stage string, message string, err error) error {
	var pipelineErr *PipelineError
	if errors.As(err, &pipelineErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewTimeoutError(stage, message, err)
	}
	return NewUpstreamError(stage, message, err)
}
