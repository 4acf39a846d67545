package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ClientConfig is the configuration of the command line client assembled
// from [StructuredConfig].
type ClientConfig struct {
	// App contains token settings of the local backend and the log file.
	App App
	// Backend selects the backend implementation.
	Backend Backend
	// Storage contains the durable storage settings.
	Storage Storage
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration. fs is the cobra flag set the flags were
// registered on with [RegisterFlags].
func GetClientConfig(fs *pflag.FlagSet) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(fs)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: cfg.App,
		Backend: Backend{
			Mode:           strings.ToLower(cfg.Backend.Mode),
			HTTPAddress:    cfg.Backend.HTTPAddress,
			RequestTimeout: cfg.Backend.RequestTimeout,
		},
		Storage: cfg.Storage,
	}

	return clientCfg, clientCfg.validate()
}
