package prompt

import "errors"

var (
	// ErrMissingVariable is returned when a template is formatted without a
	// value for one of its input variables.
	ErrMissingVariable = errors.New("missing required variables")

	// ErrInvalidVariable is returned when a supplied value fails its
	// variable's validator.
	ErrInvalidVariable = errors.New("invalid variable value")

	// ErrPlaceholderMismatch is returned when the placeholders found in a
	// template body differ from its declared input variables.
	ErrPlaceholderMismatch = errors.New("template placeholders do not match input variables")

	// ErrTemplateNotFound is returned by registries and loaders.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrUnknownUseCase is returned when a use case name cannot be parsed.
	ErrUnknownUseCase = errors.New("unknown use case")
)
