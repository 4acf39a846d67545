package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvFrom_BareNames(t *testing.T) {
	cfg := &StructuredConfig{}

	err := parseEnvFrom(cfg, map[string]string{
		"BACKEND_MODE":         "http",
		"BACKEND_ADDRESS":      "http://api:5000",
		"STORAGE_DATABASE_URI": "memory",
		"APP_REFRESH_INTERVAL": "30s",
	})

	require.NoError(t, err)
	assert.Equal(t, BackendHTTP, cfg.Backend.Mode)
	assert.Equal(t, "http://api:5000", cfg.Backend.HTTPAddress)
	assert.Equal(t, "memory", cfg.Storage.DSN)
	assert.Equal(t, 30*time.Second, cfg.App.RefreshInterval)
}

func TestParseEnvFrom_PrefixedNamesWin(t *testing.T) {
	cfg := &StructuredConfig{}

	err := parseEnvFrom(cfg, map[string]string{
		"BACKEND_MODE":                     "http",
		"CLIENT_DESK_BACKEND_MODE":         "local",
		"CLIENT_DESK_APP_TOKEN_ISSUER":     "desk",
		"STORAGE_DATABASE_URI":             "bare.db",
		"CLIENT_DESK_SERVER_ADDRESS":       ":7000",
		"CLIENT_DESK_APP_TOKEN_DURATION":   "2h",
		"UNRELATED_CLIENT_DESK_LOG_FORMAT": "json",
	})

	require.NoError(t, err)
	assert.Equal(t, BackendLocal, cfg.Backend.Mode)
	assert.Equal(t, "desk", cfg.App.TokenIssuer)
	assert.Equal(t, "bare.db", cfg.Storage.DSN)
	assert.Equal(t, ":7000", cfg.Server.HTTPAddress)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
}

func TestParseEnvFrom_InvalidPrefixedValue(t *testing.T) {
	err := parseEnvFrom(&StructuredConfig{}, map[string]string{
		"CLIENT_DESK_BACKEND_REQUEST_TIMEOUT": "soon",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPrefix)
}

func TestGetClientConfig_PrefixedEnv(t *testing.T) {
	t.Setenv("CLIENT_DESK_STORAGE_DATABASE_URI", "memory")

	cfg, err := GetClientConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.DSN)
}
