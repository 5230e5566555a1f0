package app

import (
	"errors"

	"blogai/pkg/domain"
)

// ErrInvalidInput matches every client-caused failure through errors.Is.
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrMissingTopic = &inputError{msg: "Missing or empty topic"}
	ErrInvalidModel = &inputError{msg: "Invalid model specified. Use 'gemini' or 'gpt-4o-azure'."}
)

type inputError struct {
	msg string
}

func (e *inputError) Error() string { return e.msg }

func (e *inputError) Is(target error) bool { return target == ErrInvalidInput }

// ProviderError reports any failure raised while a provider generated the blog.
// Error returns the provider's message unchanged.
type ProviderError struct {
	Provider domain.Provider
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return "provider " + string(e.Provider) + " failed"
	}
	return e.Err.Error()
}

func (e *ProviderError) Unwrap() error { return e.Err }
