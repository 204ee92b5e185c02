package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	t.Run("missing endpoint", func(t *testing.T) {
		cfg := Config{Azure: AzureConfig{APIKey: "key"}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing api key", func(t *testing.T) {
		cfg := Config{Azure: AzureConfig{Endpoint: "https://x.cognitiveservices.azure.com"}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("complete", func(t *testing.T) {
		cfg := Config{Azure: AzureConfig{
			Endpoint: "https://x.cognitiveservices.azure.com",
			APIKey:   "key",
		}}
		assert.NoError(t, cfg.Validate())
	})
}

func TestSetDefaultValues(t *testing.T) {
	globalConfig = Config{}
	setDefaultValues()

	assert.Equal(t, 5000, globalConfig.Server.Port)
	assert.Equal(t, 9090, globalConfig.Server.MetricsPort)
	assert.Equal(t, 10, globalConfig.Moderation.DownloadTimeoutSeconds)
	assert.Equal(t, 300, globalConfig.Redis.TTLSeconds)
}

func TestSetDefaultValues_KeepsExplicitValues(t *testing.T) {
	globalConfig = Config{}
	globalConfig.Server.Port = 8080
	setDefaultValues()

	assert.Equal(t, 8080, globalConfig.Server.Port)
}

func TestRedisConfig_Helpers(t *testing.T) {
	cfg := RedisConfig{Host: "localhost", Port: 6379, TTLSeconds: 300}

	assert.Equal(t, "localhost:6379", cfg.Addr())
	assert.Equal(t, 5*time.Minute, cfg.TTL())
}

func TestModerationConfig_DownloadTimeout(t *testing.T) {
	cfg := ModerationConfig{DownloadTimeoutSeconds: 10}

	assert.Equal(t, 10*time.Second, cfg.DownloadTimeout())
}
