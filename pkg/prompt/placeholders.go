package prompt

import (
	"sort"
	"strings"

	"github.com/tmc/langchaingo/prompts"
)

// Placeholders returns the sorted, de-duplicated variable names referenced
// by body in the given syntax. Jinja2 bodies are not scanned and yield nil.
func Placeholders(body string, format prompts.TemplateFormat) []string {
	switch format {
	case prompts.TemplateFormatFString:
		return fstringVariables(body)
	case prompts.TemplateFormatGoTemplate:
		return goTemplateVariables(body)
	default:
		return nil
	}
}

// EscapeBraces doubles every brace so an f-string template renders text
// literally.
func EscapeBraces(text string) string {
	return strings.NewReplacer("{", "{{", "}", "}}").Replace(text)
}

// fstringVariables scans {name} placeholders, skipping {{ and }} escapes.
// Malformed bodies are left to the renderer to report.
func fstringVariables(body string) []string {
	seen := make(map[string]bool)
	runes := []rune(body)

	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '{':
			if i+1 < len(runes) && runes[i+1] == '{' {
				i++
				continue
			}
			end := i + 1
			for end < len(runes) && runes[end] != '}' {
				end++
			}
			if end == len(runes) {
				return sortedKeys(seen)
			}
			if name := strings.TrimSpace(string(runes[i+1 : end])); name != "" {
				seen[name] = true
			}
			i = end
		case '}':
			if i+1 < len(runes) && runes[i+1] == '}' {
				i++
			}
		}
	}

	return sortedKeys(seen)
}

// goTemplateVariables extracts variable names from {{.var}} actions.
func goTemplateVariables(template string) []string {
	varMap := make(map[string]bool)

	start := 0
	for {
		idx := strings.Index(template[start:], "{{.")
		if idx == -1 {
			break
		}
		start += idx + 3

		end := strings.Index(template[start:], "}}")
		if end == -1 {
			break
		}

		varName := strings.TrimSpace(template[start : start+end])
		if varName != "" {
			varMap[varName] = true
		}
		start += end + 2
	}

	return sortedKeys(varMap)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
