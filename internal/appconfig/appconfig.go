package appconfig

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

const (
	// EnvBaseURL overrides api.baseURL from the config file.
	EnvBaseURL = "COURSEREG_API_BASE_URL"

	DefaultBaseURL = "http://localhost:8080"
	DefaultHost    = "0.0.0.0"
	DefaultPort    = 3000
	DefaultTitle   = "WinTech"
)

var ErrMissingBaseURL = errors.New("backend base URL is required")

// Config holds all configuration details
type Config struct {
	Host string    `yaml:"host"`
	Port int       `yaml:"port"`
	API  APIConfig `yaml:"api"`
	UI   UIConfig  `yaml:"ui"`
}

// APIConfig defines how the backend is reached
type APIConfig struct {
	BaseURL string        `yaml:"baseURL"`
	Timeout time.Duration `yaml:"timeout"`
}

// UIConfig defines presentation settings
type UIConfig struct {
	RedirectDelay time.Duration `yaml:"redirectDelay"`
	Title         string        `yaml:"title"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Host: DefaultHost,
		Port: DefaultPort,
		API:  APIConfig{BaseURL: DefaultBaseURL},
		UI:   UIConfig{RedirectDelay: 2 * time.Second, Title: DefaultTitle},
	}
}

// LoadConfig loads and parses the configuration from a given file path. The
// file is rendered as a template over the environment first, so values can
// be written as {{.SOME_VAR}}. Keys missing from the file keep their defaults.
// An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	// Parse the template file
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("error parsing config file template")
		return nil, fmt.Errorf("failed to parse config template: %w", err)
	}

	// Create a map of environment variables
	envVars := loadEnvVars()

	// Execute the template with environment variables
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, envVars); err != nil {
		log.Error().Err(err).Str("path", path).Msg("error executing config file template")
		return nil, fmt.Errorf("failed to execute config template: %w", err)
	}

	// Load and unmarshal the YAML
	if err := yaml.Unmarshal(buf.Bytes(), config); err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to unmarshal config YAML")
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}

// LoadEnvFiles loads variables from dotenv files into the process
// environment. Variables that are already set are not overridden. Missing
// files are skipped.
func LoadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("path", path).Msg("env file not found, skipping")
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		log.Debug().Str("path", path).Msg("loaded env file")
	}
	return nil
}

// ResolveBaseURL applies the base URL precedence: the flag when it was given,
// then the environment when the variable is set, then whatever the config
// file or defaults provided. An explicitly empty value wins and fails
// validation.
func (c *Config) ResolveBaseURL(flagValue string, flagSet bool) {
	if flagSet {
		c.API.BaseURL = flagValue
		return
	}
	if v, ok := os.LookupEnv(EnvBaseURL); ok {
		c.API.BaseURL = v
	}
}

// Validate checks the settings that cannot be used as given.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return ErrMissingBaseURL
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid backend base URL %q: must be an absolute http(s) URL", c.API.BaseURL)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("invalid api timeout %s", c.API.Timeout)
	}
	if c.UI.RedirectDelay < 0 {
		return fmt.Errorf("invalid redirect delay %s", c.UI.RedirectDelay)
	}
	return nil
}

// Addr is the listen address of the server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// loadEnvVars loads environment variables into a map
func loadEnvVars() map[string]string {
	envVars := make(map[string]string)
	for _, env := range os.Environ() {
		kv := strings.SplitN(env, "=", 2)
		if len(kv) == 2 {
			envVars[kv[0]] = kv[1]
		}
	}
	return envVars
}
