package config

import "strings"

// Environment variables recognised by parseEnv.
const (
	EnvPort        = "PORT"
	EnvGRPCAddress = "GRPC_ADDRESS"
	EnvDatabaseURL = "DATABASE_URL"
	EnvSecret      = "JWT_SECRET"
	EnvLogLevel    = "LOG_LEVEL"
)

// parseEnv overlays non-empty environment variables. PORT is a bare port
// number and becomes ":PORT".
func parseEnv(config *Config, lookup func(string) (string, bool)) {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvPort); ok {
		if !strings.Contains(v, ":") {
			v = ":" + v
		}
		config.EndpointAddrHTTP = v
	}
	if v, ok := get(EnvGRPCAddress); ok {
		config.EndpointAddrGRPC = v
	}
	if v, ok := get(EnvDatabaseURL); ok {
		config.DatabaseDSN = v
	}
	if v, ok := get(EnvSecret); ok {
		config.SecretKey = v
	}
	if v, ok := get(EnvLogLevel); ok {
		config.LogLevel = v
	}
}
