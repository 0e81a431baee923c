package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "test-gemini-key-123")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, 5, cfg.AI.OverviewCount)
	assert.InDelta(t, 0.7, cfg.AI.OverviewTemperature, 1e-9)
	assert.InDelta(t, 0.5, cfg.AI.DetailTemperature, 1e-9)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, time.Second, cfg.DedupWindow)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "https://www.googleapis.com/customsearch/v1", cfg.ImageSearch.BaseURL)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("AI_PROVIDER", "openrouter")
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test-0000")
	t.Setenv("STORE_DRIVER", "badger")
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("RATE_LIMIT_BURST", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "openrouter", cfg.AI.Provider)
	assert.Equal(t, "badger", cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing provider key",
			env:  map[string]string{"AI_PROVIDER": "gemini", "GEMINI_API_KEY": ""},
		},
		{
			name: "unknown provider",
			env:  map[string]string{"AI_PROVIDER": "nope"},
		},
		{
			name: "unknown store driver",
			env:  map[string]string{"AI_PROVIDER": "gemini", "GEMINI_API_KEY": "k", "STORE_DRIVER": "sqlite"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "abcd...wxyz", maskAPIKey("abcdefghijklmnopqrstuvwxyz"))
}
