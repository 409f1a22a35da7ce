package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Oracle providers.
const (
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// PDF text extractors.
const (
	ExtractorPlain     = "plain"
	ExtractorPdftotext = "pdftotext"
)

var defaultModels = map[string]string{
	ProviderOllama:    "mistral",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderGemini:    "gemini-2.0-flash",
	ProviderAnthropic: "claude-sonnet-4-5-20250929",
}

var apiKeyEnv = map[string]string{
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderGemini:    "GEMINI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
}

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Store struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"store" yaml:"store"`

	Oracle struct {
		Provider       string `mapstructure:"provider" yaml:"provider"`
		Model          string `mapstructure:"model" yaml:"model"`
		BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		MaxTokens      int    `mapstructure:"max_tokens" yaml:"max_tokens"`
		APIKey         string `mapstructure:"api_key" yaml:"-"`
	} `mapstructure:"oracle" yaml:"oracle"`

	Categories struct {
		File     string `mapstructure:"file" yaml:"file"`
		Fallback string `mapstructure:"fallback" yaml:"fallback"`
		Strict   bool   `mapstructure:"strict" yaml:"strict"`
	} `mapstructure:"categories" yaml:"categories"`

	PDF struct {
		Extractor string `mapstructure:"extractor" yaml:"extractor"`
	} `mapstructure:"pdf" yaml:"pdf"`

	Export struct {
		SheetName string `mapstructure:"sheet_name" yaml:"sheet_name"`
	} `mapstructure:"export" yaml:"export"`

	Web struct {
		Addr string `mapstructure:"addr" yaml:"addr"`
	} `mapstructure:"web" yaml:"web"`
}

// InitializeConfig loads configuration from the standard locations.
func InitializeConfig() (*Config, error) {
	return LoadConfig("")
}

// LoadConfig loads configuration. When configFile is empty the standard search
// path is used and a missing file is not an error.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.budget-tracker")
		v.AddConfigPath(".budget-tracker")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("BUDGET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("log.level", "BUDGET_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("log.format", "BUDGET_LOG_FORMAT", "LOG_FORMAT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.resolveOracle()

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the built-in configuration, ignoring files and the environment
// except for provider API keys.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	_ = v.Unmarshal(&config)
	config.resolveOracle()
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("store.path", "transactions.db")

	v.SetDefault("oracle.provider", ProviderOllama)
	v.SetDefault("oracle.model", "")
	v.SetDefault("oracle.base_url", "")
	v.SetDefault("oracle.timeout_seconds", 120)
	v.SetDefault("oracle.max_tokens", 1024)
	v.SetDefault("oracle.api_key", "")

	v.SetDefault("categories.file", "")
	v.SetDefault("categories.fallback", "other")
	v.SetDefault("categories.strict", true)

	v.SetDefault("pdf.extractor", ExtractorPlain)

	v.SetDefault("export.sheet_name", "Transactions")

	v.SetDefault("web.addr", ":8501")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if strings.TrimSpace(config.Store.Path) == "" {
		return fmt.Errorf("store.path must not be empty")
	}

	if _, ok := defaultModels[config.Oracle.Provider]; !ok {
		return fmt.Errorf("unknown oracle provider: %s (must be ollama, openai, gemini or anthropic)", config.Oracle.Provider)
	}

	if config.Oracle.TimeoutSeconds < 1 || config.Oracle.TimeoutSeconds > 600 {
		return fmt.Errorf("oracle.timeout_seconds must be between 1 and 600, got: %d", config.Oracle.TimeoutSeconds)
	}

	if config.Oracle.MaxTokens < 1 {
		return fmt.Errorf("oracle.max_tokens must be positive, got: %d", config.Oracle.MaxTokens)
	}

	if strings.TrimSpace(config.Categories.Fallback) == "" {
		return fmt.Errorf("categories.fallback must not be empty")
	}

	if config.PDF.Extractor != ExtractorPlain && config.PDF.Extractor != ExtractorPdftotext {
		return fmt.Errorf("invalid pdf.extractor: %s (must be 'plain' or 'pdftotext')", config.PDF.Extractor)
	}

	return nil
}

func (c *Config) resolveOracle() {
	c.Oracle.Provider = strings.ToLower(strings.TrimSpace(c.Oracle.Provider))
	if c.Oracle.Model == "" {
		c.Oracle.Model = defaultModels[c.Oracle.Provider]
	}
	if c.Oracle.APIKey == "" {
		if name, ok := apiKeyEnv[c.Oracle.Provider]; ok {
			c.Oracle.APIKey = os.Getenv(name)
		}
	}
}

// Overrides holds command-line values that take precedence over every other source.
// Empty fields leave the loaded value alone.
type Overrides struct {
	StorePath string
	Provider  string
	Model     string
}

// Apply merges o into c and validates the result. Switching provider without naming
// a model selects that provider's default model and API key.
func (c *Config) Apply(o Overrides) error {
	if o.StorePath != "" {
		c.Store.Path = o.StorePath
	}
	if o.Provider != "" && !strings.EqualFold(o.Provider, c.Oracle.Provider) {
		c.Oracle.Provider = o.Provider
		c.Oracle.Model = ""
		c.Oracle.APIKey = ""
	}
	if o.Model != "" {
		c.Oracle.Model = o.Model
	}
	c.resolveOracle()

	if err := validateConfig(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// RequiresAPIKey reports whether the configured provider needs a key to run.
func (c *Config) RequiresAPIKey() bool {
	_, ok := apiKeyEnv[c.Oracle.Provider]
	return ok
}
