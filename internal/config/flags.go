package config

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Flag names registered by [RegisterFlags].
const (
	FlagConfig          = "config"
	FlagBackend         = "backend"
	FlagAPI             = "api"
	FlagRequestTimeout  = "request-timeout"
	FlagStorageDSN      = "storage-dsn"
	FlagTokenSignKey    = "token-sign-key"
	FlagTokenIssuer     = "token-issuer"
	FlagTokenDuration   = "token-duration"
	FlagLogFile         = "log-file"
	FlagRefreshInterval = "refresh-interval"
	FlagAddress         = "address"
	FlagShutdownTimeout = "shutdown-timeout"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// RegisterFlags registers the configuration flags on fs. Zero defaults are
// used on purpose: a flag only overrides other sources when it is set.
//
// Flags:
//
//	-c/--config         config file path (JSON or YAML)
//	--backend           backend mode: http or local
//	--api               remote API base URL
//	--request-timeout   timeout of a single backend request (e.g. "15s")
//	--storage-dsn       SQLite file, postgres:// URL or "memory"
//	--token-sign-key    local token signing key
//	--token-issuer      local token issuer
//	--token-duration    local token lifetime (e.g. "24h")
//	--log-file          client log file
//	--refresh-interval  background reload period of the interactive client
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfig, "c", "", "Config file path (JSON or YAML)")
	fs.String(FlagBackend, "", "Backend mode: http or local")
	fs.String(FlagAPI, "", "Remote API base URL")
	fs.Duration(FlagRequestTimeout, 0, "Backend request timeout (e.g., 15s, 1m)")
	fs.String(FlagStorageDSN, "", "Storage DSN: SQLite file, postgres:// URL or memory")
	fs.String(FlagTokenSignKey, "", "Local backend token signing key")
	fs.String(FlagTokenIssuer, "", "Local backend token issuer")
	fs.Duration(FlagTokenDuration, 0, "Local backend token duration (e.g., 1h, 30m)")
	fs.String(FlagLogFile, "", "Client log file path")
	fs.Duration(FlagRefreshInterval, 0, "Interactive client list reload period (e.g., 1m)")
}

// RegisterServerFlags registers the flags of the development API server on
// top of [RegisterFlags].
//
//	-a/--address         listen address in form [host]:port
//	--shutdown-timeout   graceful shutdown timeout (e.g. "5s")
func RegisterServerFlags(fs *pflag.FlagSet) {
	RegisterFlags(fs)

	var address NetAddress
	fs.VarP(&address, FlagAddress, "a", "Net address host:port")
	fs.Duration(FlagShutdownTimeout, 0, "Graceful shutdown timeout (e.g., 5s)")
}

// parseFlags reads the values of the flags registered on fs. Flags that were
// not registered are left zero, so a client flag set and a server flag set
// are both accepted.
func parseFlags(fs *pflag.FlagSet) *StructuredConfig {
	cfg := &StructuredConfig{}
	if fs == nil {
		return cfg
	}

	cfg.JSONFilePath = stringFlag(fs, FlagConfig)
	cfg.Backend.Mode = stringFlag(fs, FlagBackend)
	cfg.Backend.HTTPAddress = stringFlag(fs, FlagAPI)
	cfg.Backend.RequestTimeout, _ = fs.GetDuration(FlagRequestTimeout)
	cfg.Storage.DSN = stringFlag(fs, FlagStorageDSN)
	cfg.App.TokenSignKey = stringFlag(fs, FlagTokenSignKey)
	cfg.App.TokenIssuer = stringFlag(fs, FlagTokenIssuer)
	cfg.App.TokenDuration, _ = fs.GetDuration(FlagTokenDuration)
	cfg.App.LogFile = stringFlag(fs, FlagLogFile)
	cfg.App.RefreshInterval, _ = fs.GetDuration(FlagRefreshInterval)
	cfg.Server.ShutdownTimeout, _ = fs.GetDuration(FlagShutdownTimeout)
	if f := fs.Lookup(FlagAddress); f != nil {
		cfg.Server.HTTPAddress = f.Value.String()
	}

	return cfg
}

func stringFlag(fs *pflag.FlagSet, name string) string {
	v, err := fs.GetString(name)
	if err != nil {
		return ""
	}
	return v
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form [host]:port and populates the
// NetAddress. An empty host listens on all interfaces; any other host must be
// "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "address"
}
