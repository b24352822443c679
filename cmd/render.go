package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/killallgit/qagen/pkg/config"
	"github.com/killallgit/qagen/pkg/logger"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	context      string
	contextFile  string
	domain       string
	numQuestions int
	output       string
	asJSON       bool
}

// renderedPrompt is the --json envelope of a filled template
type renderedPrompt struct {
	ID       string `json:"id"`
	Template string `json:"template"`
	Prompt   string `json:"prompt"`
}

func newRenderCmd(a *app) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <name>",
		Short: "Fill a template and print the prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.context, "context", "", "source text the pairs are generated from")
	cmd.Flags().StringVar(&opts.contextFile, "context-file", "", "read the context from a file (- for stdin)")
	cmd.Flags().StringVar(&opts.domain, "domain", "", "subject domain (default prompts.domain)")
	cmd.Flags().IntVarP(&opts.numQuestions, "num-questions", "n", 0, "number of pairs to request (default prompts.num_questions)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the prompt to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "wrap the prompt in a JSON envelope with an id")
	cmd.MarkFlagsMutuallyExclusive("context", "context-file")

	return cmd
}

func (a *app) render(cmd *cobra.Command, name string, opts *renderOptions) error {
	template, err := a.registry.Get(name)
	if err != nil {
		return err
	}

	values, err := opts.values(cmd)
	if err != nil {
		return err
	}

	// Only hand over what the template declares
	needed := make(map[string]any)
	for _, v := range template.GetInputVariables() {
		if value, ok := values[v]; ok {
			needed[v] = value
		}
	}

	text, err := template.Format(needed)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.output != "" {
		if err := os.MkdirAll(filepath.Dir(opts.output), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if !opts.asJSON {
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		_, err = fmt.Fprint(out, text)
		return err
	}

	envelope := renderedPrompt{
		ID:       uuid.NewString(),
		Template: name,
		Prompt:   text,
	}
	logger.Debug("Rendered %s as %s", name, envelope.ID)

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(envelope)
}

// values collects the substitution values from flags, falling back to config
func (o *renderOptions) values(cmd *cobra.Command) (map[string]any, error) {
	values := make(map[string]any)
	settings := config.Get().Prompts

	switch {
	case o.contextFile != "":
		data, err := readContextFile(cmd, o.contextFile)
		if err != nil {
			return nil, err
		}
		values["context"] = string(data)
	case cmd.Flags().Changed("context"):
		values["context"] = o.context
	}

	if cmd.Flags().Changed("domain") {
		values["domain"] = o.domain
	} else if settings.Domain != "" {
		values["domain"] = settings.Domain
	}

	if cmd.Flags().Changed("num-questions") {
		values["num_questions"] = o.numQuestions
	} else if settings.NumQuestions > 0 {
		values["num_questions"] = settings.NumQuestions
	}

	return values, nil
}

func readContextFile(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read context from stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read context file: %w", err)
	}
	return data, nil
}
