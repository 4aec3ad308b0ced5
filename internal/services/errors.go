package services

import "errors"

var (
	ErrSessionNotFound  = errors.New("interview not found")
	ErrQuestionNotFound = errors.New("question not found")
	// ErrPersistence marks a failed durable write. In-memory state is kept.
	ErrPersistence = errors.New("persistence failure")
)

// ErrProviderUnavailable wraps a transport or server-side LLM failure.
type ErrProviderUnavailable struct {
	Provider string
	Err      error
}

func (e *ErrProviderUnavailable) Error() string {
	return e.Provider + " unavailable: " + e.Err.Error()
}

func (e *ErrProviderUnavailable) Unwrap() error {
	return e.Err
}

// ErrInvalidResponse is returned when an LLM reply cannot be used as a grade.
type ErrInvalidResponse struct {
	Content string
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return "invalid LLM response: " + e.Err.Error()
}

func (e *ErrInvalidResponse) Unwrap() error {
	return e.Err
}
