package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppName names the config, data and log directories
const AppName = "cinelog"

// Config holds all application configuration
type Config struct {
	OMDb    OMDbConfig    `mapstructure:"omdb"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`

	// File the configuration was read from, empty when only defaults/env applied
	Source string `mapstructure:"-"`
}

// OMDbConfig holds movie directory configuration
type OMDbConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"` // 0 disables the client timeout
}

// StorageConfig holds watched list storage configuration
type StorageConfig struct {
	Dir string `mapstructure:"dir"` // empty keeps the watched list in memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	MaxStars int `mapstructure:"max_stars"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		OMDb: OMDbConfig{
			BaseURL: "https://www.omdbapi.com/",
			Timeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Dir: defaultDataPath(),
		},
		UI: UIConfig{
			MaxStars: 10,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), AppName+".log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), AppName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", AppName)
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), AppName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", AppName)
	}
}

// DefaultConfigFile is where SaveConfig writes when no path is given
func DefaultConfigFile() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("omdb.api_key", cfg.OMDb.APIKey)
	v.SetDefault("omdb.base_url", cfg.OMDb.BaseURL)
	v.SetDefault("omdb.timeout", cfg.OMDb.Timeout)
	v.SetDefault("storage.dir", cfg.Storage.Dir)
	v.SetDefault("ui.max_stars", cfg.UI.MaxStars)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// LoadConfig loads configuration from file and environment.
// configFile overrides the search path; a missing default file is not an error.
func LoadConfig(configFile string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides: CINELOG_OMDB_API_KEY, CINELOG_UI_MAX_STARS, ...
	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()
	cfg.Storage.Dir = ExpandHome(cfg.Storage.Dir)
	cfg.Logging.File = ExpandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadDotEnv exports variables from the given .env files.
// Missing files are skipped and existing environment variables win.
func loadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error loading %s: %w", f, err)
		}
	}
	return nil
}

// SaveConfig writes cfg as YAML to path (DefaultConfigFile when empty)
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigFile()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v := viper.New()
	v.Set("omdb.api_key", cfg.OMDb.APIKey)
	v.Set("omdb.base_url", cfg.OMDb.BaseURL)
	v.Set("omdb.timeout", cfg.OMDb.Timeout.String())
	v.Set("storage.dir", cfg.Storage.Dir)
	v.Set("ui.max_stars", cfg.UI.MaxStars)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	// The file holds the API key
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to restrict config file permissions: %w", err)
	}
	return nil
}

// IsConfigured returns true if the OMDb API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.OMDb.APIKey) != ""
}

// Validate checks ranges and formats; a missing API key is not an error here
func (c *Config) Validate() error {
	if c.UI.MaxStars < 1 || c.UI.MaxStars > 10 {
		return fmt.Errorf("ui.max_stars must be between 1 and 10, got %d", c.UI.MaxStars)
	}
	if c.OMDb.Timeout < 0 {
		return fmt.Errorf("omdb.timeout must not be negative, got %s", c.OMDb.Timeout)
	}
	u, err := url.Parse(c.OMDb.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("omdb.base_url is not a valid URL: %q", c.OMDb.BaseURL)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
