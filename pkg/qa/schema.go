package qa

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

const schemaVersion = "https://json-schema.org/draft/2020-12/schema"

var (
	resolveOnce sync.Once
	resolved    *jsonschema.Resolved
	resolveErr  error
)

// Schema returns the JSON schema of a single Pair. Both properties are
// required and must be non-empty.
func Schema() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[Pair](nil)
	if err != nil {
		return nil, fmt.Errorf("failed to infer qa pair schema: %w", err)
	}

	s.Schema = schemaVersion
	s.Title = "QAPair"
	for _, name := range []string{"QUESTION", "ANSWER"} {
		if prop, ok := s.Properties[name]; ok {
			prop.MinLength = jsonschema.Ptr(1)
		}
	}

	return s, nil
}

// ArraySchema returns the schema of the JSON array of pairs a filled
// template asks the model to answer with.
func ArraySchema() (*jsonschema.Schema, error) {
	item, err := Schema()
	if err != nil {
		return nil, err
	}
	item.Schema = ""

	return &jsonschema.Schema{
		Schema:   schemaVersion,
		Title:    "QAPairs",
		Type:     "array",
		Items:    item,
		MinItems: jsonschema.Ptr(1),
	}, nil
}

// SchemaJSON returns Schema (or ArraySchema when array is true) as indented JSON.
func SchemaJSON(array bool) ([]byte, error) {
	build := Schema
	if array {
		build = ArraySchema
	}

	s, err := build()
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

func resolvedPairSchema() (*jsonschema.Resolved, error) {
	resolveOnce.Do(func() {
		s, err := Schema()
		if err != nil {
			resolveErr = err
			return
		}
		resolved, resolveErr = s.Resolve(nil)
		if resolveErr != nil {
			resolveErr = fmt.Errorf("failed to resolve qa pair schema: %w", resolveErr)
		}
	})
	return resolved, resolveErr
}
