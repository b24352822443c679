package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Prompts PromptsConfig `mapstructure:"prompts"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	LogFile  string `mapstructure:"log_file"`
	Preserve bool   `mapstructure:"preserve"`
	Level    string `mapstructure:"level"`
}

// PromptsConfig holds prompt rendering configuration
type PromptsConfig struct {
	// TemplateDir, when set, is scanned for extra template files at startup
	TemplateDir string `mapstructure:"template_dir"`

	// Domain is used when a render omits --domain
	Domain string `mapstructure:"domain"`

	// NumQuestions is used when a render omits --num-questions; 0 means unset
	NumQuestions int `mapstructure:"num_questions"`
}

var (
	// Global config instance
	cfg *Config
)

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		panic("config not initialized")
	}
	return cfg
}

// IsLoaded reports whether Load has succeeded
func IsLoaded() bool {
	return cfg != nil
}

// Load loads configuration from file and environment
func Load(cfgFile string) (*Config, error) {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome == "" {
			xdgConfigHome = filepath.Join(home, ".config")
		}

		viper.AddConfigPath("./.qagen")                            // Check project directory first
		viper.AddConfigPath(filepath.Join(xdgConfigHome, "qagen")) // Then check XDG config location
		viper.SetConfigType("yaml")
		viper.SetConfigName("settings")
	}

	viper.AutomaticEnv()
	bindEnvironmentVariables()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit file must exist; the search paths are optional
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	loaded := &Config{}
	if err := viper.Unmarshal(loaded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if loaded.Prompts.NumQuestions < 0 {
		return nil, fmt.Errorf("invalid prompts.num_questions: %d", loaded.Prompts.NumQuestions)
	}

	cfg = loaded
	return cfg, nil
}

// setDefaults sets all default configuration values
func setDefaults() {
	// Logging defaults
	viper.SetDefault("logging.log_file", "")
	viper.SetDefault("logging.preserve", true)
	viper.SetDefault("logging.level", "info")

	// Prompt defaults
	viper.SetDefault("prompts.template_dir", "")
	viper.SetDefault("prompts.domain", "")
	viper.SetDefault("prompts.num_questions", 0)
}

// bindEnvironmentVariables binds QAGEN_ environment variables to Viper keys
func bindEnvironmentVariables() {
	viper.BindEnv("logging.level", "QAGEN_LOG_LEVEL")
	viper.BindEnv("logging.log_file", "QAGEN_LOG_FILE")
	viper.BindEnv("logging.preserve", "QAGEN_LOG_PRESERVE")
	viper.BindEnv("prompts.template_dir", "QAGEN_TEMPLATE_DIR")
	viper.BindEnv("prompts.domain", "QAGEN_DOMAIN")
	viper.BindEnv("prompts.num_questions", "QAGEN_NUM_QUESTIONS")
}

// GetConfigFileUsed returns the path to the config file being used
func GetConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

// WriteDefaults writes a settings file holding the default values to path.
// Its relative paths resolve against the directory of path. It refuses to
// overwrite an existing file.
func WriteDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("logging.log_file", "qagen.log")
	v.SetDefault("logging.preserve", true)
	v.SetDefault("logging.level", "info")

	v.SetDefault("prompts.template_dir", "templates")
	v.SetDefault("prompts.domain", "")
	v.SetDefault("prompts.num_questions", 3)

	if err := v.SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write default configuration: %w", err)
	}
	return nil
}
