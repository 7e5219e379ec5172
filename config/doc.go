// Package config loads the service configuration from the environment.
//
// A .env file is loaded first when present (development convenience),
// then the environment is parsed into the Config struct. The signing
// secret is a secretref resolved through the secret package, so the
// secret itself never appears in the parsed configuration. Any invalid
// value fails Load: a service with a bad rule set or TTL must not start.
package config
