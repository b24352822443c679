package prompt

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/killallgit/qagen/pkg/qa"
	"github.com/tmc/langchaingo/prompts"
	"gopkg.in/yaml.v3"
)

// TemplateSpec defines the structure of a template file. When Examples are
// present they are rendered as the JSON format block appended to Template.
type TemplateSpec struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Format      string      `json:"format,omitempty" yaml:"format,omitempty"`
	Template    string      `json:"template" yaml:"template"`
	Variables   []string    `json:"variables,omitempty" yaml:"variables,omitempty"`
	Metadata    []*Variable `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Examples    []qa.Pair   `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// standardVariables carries the descriptions and validators shared by every
// template that uses one of the catalog's placeholder names.
var standardVariables = map[string]Variable{
	"context": {
		Description: "Source text the model must restrict itself to",
	},
	"domain": {
		Description: "Subject area the model answers as an expert in",
	},
	"num_questions": {
		Description: "Number of question/answer pairs to generate",
		Validator:   PositiveInteger,
	},
}

// Build turns the spec into a checked PromptTemplate.
func (s *TemplateSpec) Build() (*PromptTemplate, error) {
	format := TemplateFormatDefault
	if s.Format != "" {
		format = prompts.TemplateFormat(s.Format)
	}

	body, err := s.body(format)
	if err != nil {
		return nil, err
	}

	vars := s.Variables
	if len(vars) == 0 {
		vars = Placeholders(body, format)
	}

	return NewPromptTemplateWithOptions(body, vars,
		WithName(s.Name),
		WithFormat(format),
		WithVariableMetadata(s.variableMetadata(vars)...),
	)
}

func (s *TemplateSpec) body(format prompts.TemplateFormat) (string, error) {
	if len(s.Examples) == 0 {
		return s.Template, nil
	}
	if format != TemplateFormatDefault {
		return "", fmt.Errorf("template %s: examples require the %s format", s.Name, TemplateFormatDefault)
	}

	block, err := qa.RenderExamples(s.Examples)
	if err != nil {
		return "", fmt.Errorf("template %s: %w", s.Name, err)
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(s.Template, "\n"))
	b.WriteString("\n\n# Format:\n```json\n")
	b.WriteString(EscapeBraces(block))
	b.WriteString("\n```\n")
	return b.String(), nil
}

func (s *TemplateSpec) variableMetadata(vars []string) []*Variable {
	var out []*Variable
	for _, name := range vars {
		v, ok := standardVariables[name]
		v.Name = name

		if i := slices.IndexFunc(s.Metadata, func(m *Variable) bool { return m != nil && m.Name == name }); i >= 0 {
			override := s.Metadata[i]
			if override.Description != "" {
				v.Description = override.Description
			}
			v.Default = override.Default
			ok = true
		}

		if ok {
			out = append(out, &v)
		}
	}
	return out
}

// parseTemplateFile decodes data read from path. Structured files (.json,
// .yaml, .yml) are TemplateSpecs; anything else is a raw f-string body named
// after the file.
func parseTemplateFile(data []byte, path string) (*TemplateSpec, error) {
	spec := &TemplateSpec{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, spec); err != nil {
			return nil, fmt.Errorf("failed to parse JSON template %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, spec); err != nil {
			return nil, fmt.Errorf("failed to parse YAML template %s: %w", path, err)
		}
	default:
		spec.Template = string(data)
	}

	if spec.Name == "" {
		spec.Name = templateNameFromPath(path)
	}
	if strings.TrimSpace(spec.Template) == "" {
		return nil, fmt.Errorf("template %s has an empty body", spec.Name)
	}

	return spec, nil
}

func templateNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
