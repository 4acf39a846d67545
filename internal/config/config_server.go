package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// ServerConfig is the configuration of the development API server. The
// server always serves the local backend, so there is no backend section.
type ServerConfig struct {
	App     App
	Storage Storage
	Server  Server
}

// GetServerConfig builds and validates the development server config from
// the merged structured configuration. fs is the flag set registered with
// [RegisterServerFlags].
func GetServerConfig(fs *pflag.FlagSet) (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(fs)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		App:     cfg.App,
		Storage: cfg.Storage,
		Server:  cfg.Server,
	}

	return serverCfg, serverCfg.validate()
}
