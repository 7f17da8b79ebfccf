package services

import "fmt"

type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

type ConfigurationError struct{ Message string }

func (e *ConfigurationError) Error() string { return e.Message }

// GenerationError means the provider finished without a usable answer.
type GenerationError struct {
	Message      string
	FinishReason FinishReason
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s (finish reason: %s)", e.Message, e.FinishReason)
}

type EmptyResultError struct{ Message string }

func (e *EmptyResultError) Error() string { return e.Message }
