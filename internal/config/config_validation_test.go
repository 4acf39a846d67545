package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validClientConfig() *ClientConfig {
	d := Defaults()
	return &ClientConfig{App: d.App, Backend: d.Backend, Storage: d.Storage}
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ClientConfig)
		wantErr error
	}{
		{name: "defaults are valid", mutate: func(c *ClientConfig) {}},
		{name: "http mode", mutate: func(c *ClientConfig) { c.Backend.Mode = BackendHTTP }},
		{
			name:    "unknown mode",
			mutate:  func(c *ClientConfig) { c.Backend.Mode = "grpc" },
			wantErr: ErrInvalidBackendConfigs,
		},
		{
			name: "http mode without address",
			mutate: func(c *ClientConfig) {
				c.Backend.Mode = BackendHTTP
				c.Backend.HTTPAddress = ""
			},
			wantErr: ErrInvalidBackendConfigs,
		},
		{
			name:    "empty dsn",
			mutate:  func(c *ClientConfig) { c.Storage.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "local mode without token duration",
			mutate:  func(c *ClientConfig) { c.App.TokenDuration = 0 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "short sign key",
			mutate:  func(c *ClientConfig) { c.App.TokenSignKey = "short" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name: "http mode ignores token settings",
			mutate: func(c *ClientConfig) {
				c.Backend.Mode = BackendHTTP
				c.App.TokenDuration = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validClientConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestServerConfig_Validate(t *testing.T) {
	d := Defaults()
	cfg := &ServerConfig{App: d.App, Storage: d.Storage, Server: d.Server}
	require.NoError(t, cfg.validate())

	cfg.Server.ShutdownTimeout = 0
	assert.ErrorIs(t, cfg.validate(), ErrInvalidServerConfigs)

	cfg.Server.ShutdownTimeout = time.Second
	cfg.Server.HTTPAddress = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidServerConfigs)
}

func TestGetClientConfig_LowercasesMode(t *testing.T) {
	t.Setenv("BACKEND_MODE", "HTTP")

	cfg, err := GetClientConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, BackendHTTP, cfg.Backend.Mode)
}

func TestGetServerConfig_FromFlags(t *testing.T) {
	fs := pflag.NewFlagSet("server", pflag.ContinueOnError)
	RegisterServerFlags(fs)
	require.NoError(t, fs.Parse([]string{"--address", "127.0.0.1:7000", "--storage-dsn", "memory"}))

	cfg, err := GetServerConfig(fs)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.HTTPAddress)
	assert.Equal(t, "memory", cfg.Storage.DSN)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
}
