// Package config provides configuration loading, merging, and validation
// facilities for client-desk.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Config file (JSON, or YAML when the extension is .yaml/.yml)
//  3. Environment variables
//  4. Command-line flags
//
// The main entry points are [GetClientConfig] for the command line client and
// [GetServerConfig] for the development API server.
package config
