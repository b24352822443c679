package cmd

import (
	"fmt"
	"strings"

	"github.com/killallgit/qagen/pkg/prompt"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered prompt templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range a.registry.List() {
				template, err := a.registry.Get(name)
				if err != nil {
					return err
				}

				tag := "-"
				if u, err := prompt.ParseUseCase(name); err == nil {
					tag = u.String()
				}

				fmt.Fprintf(out, "%-20s %-12s %s\n", name, tag, strings.Join(template.GetInputVariables(), ","))
			}
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a template body without substitution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			template, err := a.registry.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), template.Body())
			return nil
		},
	}
}
