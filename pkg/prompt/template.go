package prompt

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/killallgit/qagen/pkg/logger"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
)

// TemplateFormatDefault is the placeholder syntax of catalog templates:
// {name} placeholders with {{ and }} as literal braces.
const TemplateFormatDefault = prompts.TemplateFormatFString

// PromptTemplate is a concrete implementation of the Template interface
// that wraps langchaingo's PromptTemplate. Every input variable is required:
// formatting fails with ErrMissingVariable unless a value, a partial or a
// metadata default supplies it.
type PromptTemplate struct {
	name             string
	template         prompts.PromptTemplate
	partialVariables map[string]any
	metadata         map[string]Variable
}

var _ prompts.FormatPrompter = (*PromptTemplate)(nil)

// NewPromptTemplate creates a new f-string prompt template without checking
// that the body and the input variables agree.
func NewPromptTemplate(template string, inputVars []string) *PromptTemplate {
	pt := prompts.NewPromptTemplate(template, slices.Clone(inputVars))
	pt.TemplateFormat = TemplateFormatDefault
	return &PromptTemplate{
		template:         pt,
		partialVariables: make(map[string]any),
		metadata:         make(map[string]Variable),
	}
}

// NewPromptTemplateWithOptions creates a new prompt template with options and
// verifies it with Check.
func NewPromptTemplateWithOptions(template string, inputVars []string, options ...PromptOption) (*PromptTemplate, error) {
	pt := NewPromptTemplate(template, inputVars)

	for _, opt := range options {
		if err := opt(pt); err != nil {
			return nil, err
		}
	}

	if err := pt.Check(); err != nil {
		return nil, err
	}

	return pt, nil
}

// Check verifies that the body renders in its format and that the
// placeholders it references are exactly the declared input variables.
func (p *PromptTemplate) Check() error {
	vars := p.template.InputVariables
	if err := prompts.CheckValidTemplate(p.template.Template, p.template.TemplateFormat, vars); err != nil {
		return p.wrap(fmt.Errorf("invalid template: %w", err))
	}

	if p.template.TemplateFormat == prompts.TemplateFormatJinja2 {
		return nil
	}

	found := Placeholders(p.template.Template, p.template.TemplateFormat)
	declared := slices.Clone(vars)
	sort.Strings(declared)
	if !slices.Equal(found, declared) {
		return p.wrap(fmt.Errorf("%w: body uses [%s], declared [%s]",
			ErrPlaceholderMismatch, strings.Join(found, ", "), strings.Join(declared, ", ")))
	}

	return nil
}

// Format formats the template with the given values
func (p *PromptTemplate) Format(values map[string]any) (string, error) {
	merged := p.mergeValues(values)

	if err := p.validateVariables(merged); err != nil {
		return "", err
	}

	out, err := p.template.Format(merged)
	if err != nil {
		return "", p.wrap(fmt.Errorf("failed to render template: %w", err))
	}

	logger.Debug("Rendered prompt template %s (%d bytes)", p.displayName(), len(out))
	return out, nil
}

// FormatPrompt formats the template as a prompt value
func (p *PromptTemplate) FormatPrompt(values map[string]any) (llms.PromptValue, error) {
	out, err := p.Format(values)
	if err != nil {
		return nil, err
	}

	return prompts.StringPromptValue(out), nil
}

// GetInputVariables returns the list of input variable names
func (p *PromptTemplate) GetInputVariables() []string {
	return slices.Clone(p.template.InputVariables)
}

// Body returns the raw template text.
func (p *PromptTemplate) Body() string {
	return p.template.Template
}

// TemplateFormat returns the placeholder syntax of the body.
func (p *PromptTemplate) TemplateFormat() prompts.TemplateFormat {
	return p.template.TemplateFormat
}

// Name returns the name given with WithName, if any.
func (p *PromptTemplate) Name() string {
	return p.name
}

// WithPartialVariables creates a new template with partial variables set
func (p *PromptTemplate) WithPartialVariables(partials map[string]any) Template {
	newTemplate := &PromptTemplate{
		name:             p.name,
		template:         p.template,
		partialVariables: make(map[string]any, len(p.partialVariables)+len(partials)),
		metadata:         maps.Clone(p.metadata),
	}
	newTemplate.template.InputVariables = slices.Clone(p.template.InputVariables)

	for k, v := range p.partialVariables {
		newTemplate.partialVariables[k] = v
	}
	for k, v := range partials {
		newTemplate.partialVariables[k] = v
	}

	return newTemplate
}

// Variable returns a copy of the metadata registered for name, if any.
func (p *PromptTemplate) Variable(name string) (Variable, bool) {
	v, ok := p.metadata[name]
	return v, ok
}

// mergeValues merges partial variables with provided values
func (p *PromptTemplate) mergeValues(values map[string]any) map[string]any {
	merged := make(map[string]any, len(p.partialVariables)+len(values))

	for k, v := range p.partialVariables {
		merged[k] = v
	}
	for k, v := range values {
		merged[k] = v
	}

	// Apply defaults for missing variables
	for _, varName := range p.template.InputVariables {
		if _, exists := merged[varName]; !exists {
			if meta, ok := p.metadata[varName]; ok && meta.Default != nil {
				merged[varName] = meta.Default
			}
		}
	}

	return merged
}

// validateVariables checks that all input variables are present, then runs
// their validators. Missing variables are reported first.
func (p *PromptTemplate) validateVariables(values map[string]any) error {
	var missing []string
	for _, varName := range p.template.InputVariables {
		if _, exists := values[varName]; !exists {
			missing = append(missing, varName)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return p.wrap(fmt.Errorf("%w: %s", ErrMissingVariable, strings.Join(missing, ", ")))
	}

	for _, varName := range p.template.InputVariables {
		if meta, ok := p.metadata[varName]; ok && meta.Validator != nil {
			if err := meta.Validator(values[varName]); err != nil {
				return p.wrap(fmt.Errorf("%w %s: %w", ErrInvalidVariable, varName, err))
			}
		}
	}

	return nil
}

func (p *PromptTemplate) displayName() string {
	if p.name == "" {
		return "(unnamed)"
	}
	return p.name
}

func (p *PromptTemplate) wrap(err error) error {
	if p.name == "" {
		return err
	}
	return fmt.Errorf("template %s: %w", p.name, err)
}

// PromptOption is a functional option for configuring a PromptTemplate
type PromptOption func(*PromptTemplate) error

// WithName names the template in errors and log lines
func WithName(name string) PromptOption {
	return func(pt *PromptTemplate) error {
		pt.name = name
		return nil
	}
}

// WithFormat sets the placeholder syntax of the body
func WithFormat(format prompts.TemplateFormat) PromptOption {
	return func(pt *PromptTemplate) error {
		switch format {
		case prompts.TemplateFormatFString, prompts.TemplateFormatGoTemplate, prompts.TemplateFormatJinja2:
			pt.template.TemplateFormat = format
			return nil
		default:
			return fmt.Errorf("%w: %s", prompts.ErrInvalidTemplateFormat, format)
		}
	}
}

// WithPartials sets partial variables
func WithPartials(partials map[string]any) PromptOption {
	return func(pt *PromptTemplate) error {
		for k, v := range partials {
			pt.partialVariables[k] = v
		}
		return nil
	}
}

// WithVariableMetadata sets metadata for variables
func WithVariableMetadata(variables ...*Variable) PromptOption {
	return func(pt *PromptTemplate) error {
		for _, v := range variables {
			if v == nil {
				continue
			}
			if !slices.Contains(pt.template.InputVariables, v.Name) {
				return fmt.Errorf("metadata for undeclared variable %s", v.Name)
			}
			pt.metadata[v.Name] = *v
		}
		return nil
	}
}
