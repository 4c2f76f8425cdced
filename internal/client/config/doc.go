// Package config loads runtime configuration for the TaskKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-s string     base URL of the TaskKeeper HTTP API
//	-t duration   per-request timeout, e.g. 5s
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:3000",
//	  "timeout": "10s"
//	}
package config
