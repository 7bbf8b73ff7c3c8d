package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultProfile = "default"
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 30
)

// Profile points the client at one staking endpoint.
type Profile struct {
	BaseURL        string `json:"base_url" mapstructure:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" mapstructure:"timeout_seconds"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Addr        string `json:"addr" mapstructure:"addr"`
	MetricsAddr string `json:"metrics_addr" mapstructure:"metrics_addr"`
	RedisAddr   string `json:"redis_addr,omitempty" mapstructure:"redis_addr"`
	Env         string `json:"env" mapstructure:"env"`
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles" mapstructure:"profiles"`
	ActiveProfile  string             `json:"active_profile" mapstructure:"active_profile"`
	Server         ServerConfig       `json:"server" mapstructure:"server"`
	LogFile        string             `json:"log_file,omitempty" mapstructure:"log_file"`
	currentProfile *Profile
	baseURLEnv     string
}

// LoadConfig reads ~/.roristake/config.json, creating it with defaults on
// first use. Env vars with prefix RORISTAKE_ override file values.
func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := saveConfig(defaultConfig(), configPath); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	}

	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	return config, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("active_profile", DefaultProfile)
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.metrics_addr", ":9095")
	v.SetDefault("server.redis_addr", "")
	v.SetDefault("server.env", "local")
	v.SetDefault("log_file", "")

	v.SetEnvPrefix("RORISTAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("base_url")
	return v
}

func loadConfigFile(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	config.baseURLEnv = v.GetString("base_url")
	return &config, nil
}

func defaultConfig() *Config {
	return &Config{
		Profiles: map[string]Profile{
			DefaultProfile: {
				BaseURL:        DefaultBaseURL,
				TimeoutSeconds: DefaultTimeout,
			},
		},
		ActiveProfile: DefaultProfile,
		Server: ServerConfig{
			Addr:        ":8000",
			MetricsAddr: ":9095",
			Env:         "local",
		},
	}
}

func getConfigPath() (string, error) {
	var configDir string

	// Use RORISTAKE_HOME if set, otherwise use user's home directory
	if home := os.Getenv("RORISTAKE_HOME"); home != "" {
		configDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".roristake", "config.json"), nil
}

// Dir is the directory holding the config file and the TUI log.
func Dir() (string, error) {
	p, err := getConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Dir(p), nil
}

func ensureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0o755)
}

// saveConfig writes plain JSON; viper is only used for reading.
func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0o600)
}

func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return saveConfig(c, configPath)
}

func (c *Config) IsValid() bool {
	return c.GetBaseURL() != ""
}

func (c *Config) GetBaseURL() string {
	if c.baseURLEnv != "" {
		return c.baseURLEnv
	}
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.BaseURL
}

func (c *Config) GetTimeout() time.Duration {
	if c.currentProfile == nil || c.currentProfile.TimeoutSeconds <= 0 {
		return DefaultTimeout * time.Second
	}
	return time.Duration(c.currentProfile.TimeoutSeconds) * time.Second
}

// ProfileNames returns profile names in a stable order.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NormalizeProfileName lowercases names; viper folds map keys on load.
func NormalizeProfileName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	c.ActiveProfile = NormalizeProfileName(c.ActiveProfile)
	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// Fall back to the first profile by name
		name := c.ProfileNames()[0]
		c.ActiveProfile = name
		profile = c.Profiles[name]
	}

	c.currentProfile = &profile
	return nil
}

// UseProfile switches the active profile in memory. Call Save to persist it.
func (c *Config) UseProfile(name string) error {
	name = NormalizeProfileName(name)
	if _, exists := c.Profiles[name]; !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	c.ActiveProfile = name
	return c.setCurrentProfile()
}
