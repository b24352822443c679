package prompt

import (
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
)

// Template represents a generic prompt template interface
type Template interface {
	// Format formats the template with the given variables
	Format(values map[string]any) (string, error)

	// FormatPrompt formats the template as a prompt value
	FormatPrompt(values map[string]any) (llms.PromptValue, error)

	// GetInputVariables returns the list of input variable names
	GetInputVariables() []string

	// WithPartialVariables creates a new template with partial variables set
	WithPartialVariables(partials map[string]any) Template

	// Body returns the raw, unfilled template text
	Body() string

	// TemplateFormat returns the placeholder syntax of the body
	TemplateFormat() prompts.TemplateFormat
}

// Loader loads templates from various sources
type Loader interface {
	// Load loads a template by name/path
	Load(name string) (Template, error)
}

// Registry manages prompt templates
type Registry interface {
	// Register registers a template with a name
	Register(name string, template Template) error

	// Get retrieves a template by name
	Get(name string) (Template, error)

	// List returns all registered template names, sorted
	List() []string

	// Clear removes all registered templates
	Clear()
}

// Variable represents a template variable with metadata
type Variable struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`

	// Validator, when set, is run against the supplied value before rendering.
	Validator func(value any) error `json:"-" yaml:"-"`
}
