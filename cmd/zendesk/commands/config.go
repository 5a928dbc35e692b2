package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/zendesk/internal/constants"
	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

// Config represents the CLI configuration file.
type Config struct {
	Subdomain string               `json:"subdomain,omitempty"  yaml:"subdomain,omitempty"`
	Username  string               `json:"username,omitempty"   yaml:"username,omitempty"`
	APIKey    string               `json:"api_key,omitempty"    yaml:"api_key,omitempty"`
	Output    string               `json:"output,omitempty"     yaml:"output,omitempty"`
	LogLevel  string               `json:"log_level,omitempty"  yaml:"log_level,omitempty"`
	Cache     *zendesk.CacheConfig `json:"cache,omitempty"      yaml:"cache,omitempty"`
	LastLogin *time.Time           `json:"last_login,omitempty" yaml:"last_login,omitempty"`
}

func loadConfig() *Config {
	config := &Config{
		Subdomain: viper.GetString("subdomain"),
		Username:  viper.GetString("username"),
		APIKey:    viper.GetString("api_key"),
		Output:    viper.GetString("output"),
		LogLevel:  viper.GetString("log_level"),
		Cache:     loadCacheConfig(),
	}

	if viper.IsSet("last_login") {
		lastLogin := viper.GetTime("last_login")
		if !lastLogin.IsZero() {
			config.LastLogin = &lastLogin
		}
	}

	return config
}

// loadCacheConfig round-trips the "cache" section through yaml so the
// library's yaml tags apply.
func loadCacheConfig() *zendesk.CacheConfig {
	raw := viper.Get("cache")
	if raw == nil {
		return nil
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return nil
	}

	var cacheConfig zendesk.CacheConfig

	err = yaml.Unmarshal(data, &cacheConfig)
	if err != nil || cacheConfig.Type == "" {
		return nil
	}

	return &cacheConfig
}

func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".zendesk", "config.yml"), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	viper.SetConfigFile(configFile)

	return nil
}

// masked returns a copy of config safe to display.
func (c *Config) masked() *Config {
	clone := *c
	if clone.APIKey != "" {
		clone.APIKey = constants.MaskedSecret
	}

	if c.Cache != nil && c.Cache.Redis != nil && c.Cache.Redis.Password != "" {
		cache := *c.Cache
		redisConfig := *c.Cache.Redis
		redisConfig.Password = constants.MaskedSecret
		cache.Redis = &redisConfig
		clone.Cache = &cache
	}

	return &clone
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Display and change the Zendesk CLI configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig().masked()
			out := cmd.OutOrStdout()

			switch viper.GetString("output") {
			case constants.FormatJSON:
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")

				return encoder.Encode(config)
			case constants.FormatYAML:
				return yaml.NewEncoder(out).Encode(config)
			default:
				return displayConfigTable(out, config)
			}
		},
	}
}

func displayConfigTable(out io.Writer, config *Config) error {
	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")

	_ = table.Append("Subdomain", orNotAvailable(config.Subdomain))
	_ = table.Append("Username", orNotAvailable(config.Username))
	_ = table.Append("API Key", orNotAvailable(config.APIKey))
	_ = table.Append("Output", orNotAvailable(config.Output))
	_ = table.Append("Log Level", orNotAvailable(config.LogLevel))

	cacheType := constants.NotAvailable
	if config.Cache != nil {
		cacheType = string(config.Cache.Type)
	}

	_ = table.Append("Cache", cacheType)

	if config.LastLogin != nil {
		_ = table.Append("Last Login", config.LastLogin.Format(time.RFC3339))
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Set a configuration value. Keys: subdomain, username, output, log_level,
cache (memory, redis, nats, none), redis_addr, nats_url.

The API key is stored by 'zendesk login'.`,
		Args: cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", args[0], args[1])

			return nil
		},
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "subdomain":
		config.Subdomain = value
	case "username":
		config.Username = value
	case "output":
		return setOutput(config, value)
	case "log_level":
		_, err := parseLogLevel(value)
		if err != nil {
			return err
		}

		config.LogLevel = value
	case "cache":
		return setCacheType(config, zendesk.CacheType(value))
	case "redis_addr":
		ensureCache(config, zendesk.CacheTypeRedis)
		config.Cache.Redis = &zendesk.RedisCacheConfig{Addr: value}
	case "nats_url":
		ensureCache(config, zendesk.CacheTypeNATS)
		config.Cache.NATS = &zendesk.NATSKVConfig{URL: value}
	case "api_key":
		return fmt.Errorf("%w: %s, use 'zendesk login'", constants.ErrConfigKeyReadOnly, key)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func setOutput(config *Config, value string) error {
	switch value {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		config.Output = value

		return nil
	default:
		return fmt.Errorf("%w: %q", constants.ErrInvalidOutput, value)
	}
}

func setCacheType(config *Config, cacheType zendesk.CacheType) error {
	switch cacheType {
	case zendesk.CacheTypeNone:
		config.Cache = nil
	case zendesk.CacheTypeMemory, zendesk.CacheTypeRedis, zendesk.CacheTypeNATS:
		ensureCache(config, cacheType)
		config.Cache.Type = cacheType
	default:
		return fmt.Errorf("%w: %s", zendesk.ErrUnsupportedCacheType, cacheType)
	}

	return nil
}

func ensureCache(config *Config, cacheType zendesk.CacheType) {
	if config.Cache == nil {
		config.Cache = &zendesk.CacheConfig{Type: cacheType}
	}
}
