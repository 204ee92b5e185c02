package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Azure      AzureConfig      `mapstructure:"azure"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Moderation ModerationConfig `mapstructure:"moderation"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

type AzureConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"api_key"`
}

type RedisConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type ModerationConfig struct {
	DownloadTimeoutSeconds int                    `mapstructure:"download_timeout_seconds"`
	Settings               map[string]interface{} `mapstructure:"settings"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c RedisConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

func (c ModerationConfig) DownloadTimeout() time.Duration {
	return time.Duration(c.DownloadTimeoutSeconds) * time.Second
}

var globalConfig Config

func Load(configPath string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// The backend credentials usually arrive via environment only.
	_ = viper.BindEnv("azure.endpoint", "AZURE_ENDPOINT")
	_ = viper.BindEnv("azure.api_key", "AZURE_KEY", "AZURE_API_KEY")
	_ = viper.BindEnv("server.port", "SERVER_PORT")
	_ = viper.BindEnv("redis.host", "REDIS_HOST")
	_ = viper.BindEnv("redis.password", "REDIS_PASSWORD")

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	setDefaultValues()

	return nil
}

func setDefaultValues() {
	if globalConfig.Server.Port == 0 {
		globalConfig.Server.Port = 5000
	}
	if globalConfig.Server.MetricsPort == 0 {
		globalConfig.Server.MetricsPort = 9090
	}
	if globalConfig.Moderation.DownloadTimeoutSeconds == 0 {
		globalConfig.Moderation.DownloadTimeoutSeconds = 10
	}
	if globalConfig.Redis.TTLSeconds == 0 {
		globalConfig.Redis.TTLSeconds = 300
	}
}

// Validate enforces the startup contract: the classification backend must be
// configured or the process must not serve.
func (c *Config) Validate() error {
	if c.Azure.Endpoint == "" {
		return errors.New("azure content safety endpoint is required (AZURE_ENDPOINT)")
	}
	if c.Azure.APIKey == "" {
		return errors.New("azure content safety api key is required (AZURE_KEY)")
	}
	return nil
}

func GetConfig() *Config {
	return &globalConfig
}
