package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func newClientFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterConfigOverrides verifies that non-zero fields of later
// configs win and zero fields keep earlier values.
func TestBuild_LaterConfigOverrides(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{TokenIssuer: "first", LogFile: "a.log"}},
		&StructuredConfig{App: App{TokenIssuer: "second"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "second", cfg.App.TokenIssuer)
	assert.Equal(t, "a.log", cfg.App.LogFile)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("BACKEND_MODE", "http")
	t.Setenv("BACKEND_REQUEST_TIMEOUT", "3s")
	t.Setenv("APP_TOKEN_ISSUER", "env-issuer")

	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())

	require.Len(t, b.configs, 1)
	assert.Equal(t, "http", b.configs[0].Backend.Mode)
	assert.Equal(t, 3*time.Second, b.configs[0].Backend.RequestTimeout)
	assert.Equal(t, "env-issuer", b.configs[0].App.TokenIssuer)
	assert.NoError(t, b.err)
}

func TestWithEnv_InvalidDuration(t *testing.T) {
	t.Setenv("APP_TOKEN_DURATION", "forever")

	b := newConfigBuilder().withEnv()
	require.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFile ──────────────────────────────────────────────────────────────────

func TestWithFile_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withFile()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithFile_InsertedAfterDefaults verifies that the file config sits
// between the defaults and the env/flag configs.
func TestWithFile_InsertedAfterDefaults(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"storage": map[string]any{"dsn": "file.db"},
	})

	flagCfg := &StructuredConfig{JSONFilePath: path}
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs, flagCfg)
	b.withFile()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "file.db", b.configs[1].Storage.DSN)
	assert.Same(t, flagCfg, b.configs[2])
}

func TestWithFile_SetsErrorForMissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})
	b.withFile()

	assert.Error(t, b.err)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

func TestGetStructuredConfig_Defaults(t *testing.T) {
	cfg, err := GetStructuredConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

// TestGetStructuredConfig_Priority verifies defaults < file < env < flags.
func TestGetStructuredConfig_Priority(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"backend": map[string]any{"mode": "http", "http_address": "http://file:1", "request_timeout": "7s"},
		"storage": map[string]any{"dsn": "file.db"},
		"app":     map[string]any{"token_issuer": "file-issuer"},
	})
	t.Setenv("CONFIG", path)
	t.Setenv("BACKEND_ADDRESS", "http://env:2")
	t.Setenv("STORAGE_DATABASE_URI", "env.db")

	fs := newClientFlagSet(t, "--storage-dsn", "flag.db")

	cfg, err := GetStructuredConfig(fs)
	require.NoError(t, err)

	assert.Equal(t, "http", cfg.Backend.Mode)
	assert.Equal(t, "http://env:2", cfg.Backend.HTTPAddress)
	assert.Equal(t, 7*time.Second, cfg.Backend.RequestTimeout)
	assert.Equal(t, "flag.db", cfg.Storage.DSN)
	assert.Equal(t, "file-issuer", cfg.App.TokenIssuer)
	assert.Equal(t, 24*time.Hour, cfg.App.TokenDuration)
}
