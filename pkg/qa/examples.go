package qa

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// RenderExamples renders pairs as the example block embedded in a prompt:
// indented JSON objects separated by ",\n". HTML characters are left
// unescaped so URLs and markup read naturally to the model.
func RenderExamples(pairs []Pair) (string, error) {
	blocks := make([]string, 0, len(pairs))
	for i, p := range pairs {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		if err := enc.Encode(p); err != nil {
			return "", fmt.Errorf("failed to render example %d: %w", i, err)
		}
		blocks = append(blocks, strings.TrimRight(buf.String(), "\n"))
	}
	return strings.Join(blocks, ",\n"), nil
}
