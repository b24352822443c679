package cmd

import (
	"fmt"

	"github.com/killallgit/qagen/pkg/config"
	"github.com/killallgit/qagen/pkg/qa"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	var array bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of a question/answer pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := qa.SchemaJSON(array)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&array, "array", false, "print the schema of a non-empty array of pairs")
	return cmd
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfgFile
			if path == "" {
				path = defaultConfigPath
			}
			if err := config.WriteDefaults(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
}
