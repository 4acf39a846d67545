package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StructuredFileConfig mirrors [StructuredConfig] for config files. Durations
// are written as strings ("15s", "24h").
type StructuredFileConfig struct {
	App struct {
		TokenSignKey    string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer     string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration   Duration `json:"token_duration" yaml:"token_duration"`
		LogFile         string   `json:"log_file" yaml:"log_file"`
		RefreshInterval Duration `json:"refresh_interval" yaml:"refresh_interval"`
	} `json:"app,omitempty" yaml:"app,omitempty"`

	Backend struct {
		Mode           string   `json:"mode" yaml:"mode"`
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"backend,omitempty" yaml:"backend,omitempty"`

	Storage struct {
		DSN string `json:"dsn" yaml:"dsn"`
	} `json:"storage,omitempty" yaml:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address" yaml:"http_address"`
		ShutdownTimeout Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	} `json:"server,omitempty" yaml:"server,omitempty"`
}

// parseFile reads a config file. Files ending in .yaml or .yml are decoded as
// YAML, everything else as JSON.
func parseFile(path string) (*StructuredConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}
	defer file.Close()

	var fileCfg StructuredFileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(file).Decode(&fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err := json.NewDecoder(file).Decode(&fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:    fileCfg.App.TokenSignKey,
			TokenIssuer:     fileCfg.App.TokenIssuer,
			TokenDuration:   time.Duration(fileCfg.App.TokenDuration),
			LogFile:         fileCfg.App.LogFile,
			RefreshInterval: time.Duration(fileCfg.App.RefreshInterval),
		},
		Backend: Backend{
			Mode:           fileCfg.Backend.Mode,
			HTTPAddress:    fileCfg.Backend.HTTPAddress,
			RequestTimeout: time.Duration(fileCfg.Backend.RequestTimeout),
		},
		Storage: Storage{
			DSN: fileCfg.Storage.DSN,
		},
		Server: Server{
			HTTPAddress:     fileCfg.Server.HTTPAddress,
			ShutdownTimeout: time.Duration(fileCfg.Server.ShutdownTimeout),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON and YAML
// unmarshaling from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	if n, err := time.ParseDuration(s); err == nil {
		*d = Duration(n)
		return nil
	}

	var n int64
	if err := node.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	*d = Duration(time.Duration(n))
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}
