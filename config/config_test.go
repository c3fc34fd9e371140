package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	LoadConfig()

	assert.Equal(t, "8080", AppConfig.AppPort)
	assert.Equal(t, "development", AppConfig.Env)
	assert.Equal(t, "mongodb://localhost:27017", AppConfig.DatabaseURL)
	assert.Equal(t, 1440, AppConfig.SwapPendingMaxAgeMin)
	assert.Equal(t, 15, AppConfig.SwapReclaimIntervalMin)
	assert.False(t, IsProduction())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("SWAP_PENDING_MAX_AGE_MIN", "30")

	LoadConfig()

	assert.Equal(t, "9090", AppConfig.AppPort)
	assert.Equal(t, 30, AppConfig.SwapPendingMaxAgeMin)
	assert.True(t, IsProduction())
}
