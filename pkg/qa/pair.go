// Package qa defines the question/answer record that the prompt catalog asks
// a model to produce, together with its JSON schema.
package qa

import (
	"fmt"
	"strings"
)

// Pair is a single generated question with its answer. Both fields hold
// Korean natural-language text. The JSON keys match the output shape the
// prompt templates request from the model.
type Pair struct {
	Question string `json:"QUESTION" yaml:"question" jsonschema:"Question generated from the text"`
	Answer   string `json:"ANSWER" yaml:"answer" jsonschema:"Answer related to the question"`
}

// Validate checks the pair against the schema returned by Schema.
func (p Pair) Validate() error {
	resolved, err := resolvedPairSchema()
	if err != nil {
		return err
	}

	if err := resolved.Validate(p.toMap()); err != nil {
		return fmt.Errorf("invalid qa pair: %w", err)
	}
	return nil
}

// String returns a compact single-line rendering, useful in logs.
func (p Pair) String() string {
	return fmt.Sprintf("Q: %s / A: %s", oneLine(p.Question), oneLine(p.Answer))
}

func (p Pair) toMap() map[string]any {
	return map[string]any{
		"QUESTION": p.Question,
		"ANSWER":   p.Answer,
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
