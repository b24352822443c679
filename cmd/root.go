package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/killallgit/qagen/pkg/config"
	"github.com/killallgit/qagen/pkg/logger"
	"github.com/killallgit/qagen/pkg/prompt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// defaultConfigPath is where init writes settings when --config is not given
const defaultConfigPath = ".qagen/settings.yaml"

// app carries the state shared by one command tree invocation
type app struct {
	cfgFile  string
	registry prompt.Registry
}

// NewRootCmd builds the qagen command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "qagen",
		Short: "Korean QA-pair prompt catalog",
		Long: `qagen lists, inspects and renders the prompt templates used to generate
Korean question/answer training pairs from source text.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// init creates the settings file, so it must not require one
			if cmd.Name() == "init" {
				return nil
			}
			return a.initConfig()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Close()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default searches ./.qagen/settings.yaml then $XDG_CONFIG_HOME/qagen)")

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newRenderCmd(a),
		newSchemaCmd(),
		newInitCmd(a),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	err := NewRootCmd().Execute()
	logger.Close()
	if err != nil {
		os.Exit(1)
	}
}

func (a *app) initConfig() error {
	// A previous run in this process may have failed before closing its logger
	logger.Close()

	if _, err := config.Load(a.cfgFile); err != nil {
		return err
	}

	if err := logger.Init(); err != nil {
		return err
	}

	if used := config.GetConfigFileUsed(); used != "" {
		logger.Debug("Using config file: %s", used)
	}

	templateDir := config.Get().Prompts.TemplateDir
	if templateDir != "" {
		templateDir = config.BuildSettingsPath(templateDir)
	}

	registry, err := buildRegistry(templateDir)
	if err != nil {
		return err
	}
	a.registry = registry
	return nil
}

// buildRegistry returns a registry holding the built-in catalog plus any
// templates found in templateDir
func buildRegistry(templateDir string) (prompt.Registry, error) {
	registry := prompt.NewRegistry()
	for _, u := range prompt.UseCases() {
		template, err := prompt.Get(u)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(u.Name(), template); err != nil {
			return nil, err
		}
	}

	if templateDir == "" {
		return registry, nil
	}

	if _, err := prompt.LoadDir(prompt.NewFileLoader(templateDir), registry); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Template directory %s does not exist, skipping", templateDir)
			return registry, nil
		}
		return nil, fmt.Errorf("failed to load templates from %s: %w", templateDir, err)
	}
	return registry, nil
}
