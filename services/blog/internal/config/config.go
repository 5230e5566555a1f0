package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file, relative to the working directory.
const ConfigPath = "config.yaml"

const (
	defaultPort                   = "5000"
	defaultLogLevel               = "info"
	defaultGeminiModel            = "gemini-2.0-flash"
	defaultAzureAPIVersion        = "2025-01-01-preview"
	defaultProviderTimeoutSeconds = 120
)

// FileConfig represents configuration loaded from YAML and the environment.
// It is read once at startup and not mutated afterwards.
type FileConfig struct {
	Port                   string   `yaml:"port"`
	LogLevel               string   `yaml:"logLevel"`
	LogsDir                string   `yaml:"logsDir"`
	TrustedProxyCIDRs      []string `yaml:"trustedProxyCidrs"`
	ProviderTimeoutSeconds int      `yaml:"providerTimeoutSeconds"`

	GeminiAPIKey  string `yaml:"geminiAPIKey"`
	GeminiBaseURL string `yaml:"geminiBaseURL"`
	GeminiModel   string `yaml:"geminiModel"`

	AzureAPIKey     string `yaml:"azureOpenAIAPIKey"`
	AzureEndpoint   string `yaml:"azureOpenAIEndpoint"`
	AzureDeployment string `yaml:"azureOpenAIDeployment"`
	AzureAPIVersion string `yaml:"azureOpenAIAPIVersion"`
}

// Load reads config from path, falling back to $BLOG_CONFIG and then config.yaml.
// A missing file is not an error: the service can run from environment variables alone.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = os.Getenv("BLOG_CONFIG")
	}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Environment only.
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Override with environment variables. Provider variable names match the
// ones the service has always used so existing deployments keep working.
func applyEnv(cfg *FileConfig) error {
	if v := os.Getenv("BLOG_PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("BLOG_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("BLOG_LOGS_DIR"); v != "" {
		cfg.LogsDir = v
	}
	if v := os.Getenv("BLOG_TRUSTED_PROXY_CIDRS"); v != "" {
		cfg.TrustedProxyCIDRs = strings.Split(v, ",")
	}
	if v := os.Getenv("BLOG_PROVIDER_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: BLOG_PROVIDER_TIMEOUT_SECONDS must be a whole number of seconds, got %q", v)
		}
		cfg.ProviderTimeoutSeconds = n
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("GEMINI_BASE_URL"); v != "" {
		cfg.GeminiBaseURL = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}
	if v := os.Getenv("AZURE_OPENAI_API_KEY"); v != "" {
		cfg.AzureAPIKey = v
	}
	if v := os.Getenv("ENDPOINT_URL"); v != "" {
		cfg.AzureEndpoint = v
	}
	if v := os.Getenv("DEPLOYMENT_NAME"); v != "" {
		cfg.AzureDeployment = v
	}
	if v := os.Getenv("AZURE_OPENAI_API_VERSION"); v != "" {
		cfg.AzureAPIVersion = v
	}
	return nil
}

func applyDefaults(cfg *FileConfig) {
	if strings.TrimSpace(cfg.Port) == "" {
		cfg.Port = defaultPort
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if strings.TrimSpace(cfg.GeminiModel) == "" {
		cfg.GeminiModel = defaultGeminiModel
	}
	if strings.TrimSpace(cfg.AzureAPIVersion) == "" {
		cfg.AzureAPIVersion = defaultAzureAPIVersion
	}
	if cfg.ProviderTimeoutSeconds == 0 {
		cfg.ProviderTimeoutSeconds = defaultProviderTimeoutSeconds
	}
}

func validateConfig(cfg FileConfig) error {
	port, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("config: port must be a number between 1 and 65535, got %q", cfg.Port)
	}
	if cfg.ProviderTimeoutSeconds < 0 {
		return errors.New("config: providerTimeoutSeconds must be >= 0 (set in config.yaml or BLOG_PROVIDER_TIMEOUT_SECONDS)")
	}
	return nil
}

// ProviderTimeout is the HTTP client timeout applied to each provider call.
func (c FileConfig) ProviderTimeout() time.Duration {
	return time.Duration(c.ProviderTimeoutSeconds) * time.Second
}

// MissingProviderSettings lists provider settings that are empty. Requests routed
// to a provider with missing settings fail at call time, so this is only a warning.
func (c FileConfig) MissingProviderSettings() []string {
	var missing []string
	if strings.TrimSpace(c.GeminiAPIKey) == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if strings.TrimSpace(c.AzureAPIKey) == "" {
		missing = append(missing, "AZURE_OPENAI_API_KEY")
	}
	if strings.TrimSpace(c.AzureEndpoint) == "" {
		missing = append(missing, "ENDPOINT_URL")
	}
	if strings.TrimSpace(c.AzureDeployment) == "" {
		missing = append(missing, "DEPLOYMENT_NAME")
	}
	return missing
}
