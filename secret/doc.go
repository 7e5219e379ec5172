// Package secret resolves the signing secret and other sensitive
// configuration values without embedding them in config files.
//
// It supports:
//   - Strict environment expansion (see ExpandEnvStrict)
//   - Pluggable secret providers (see Provider + Registry)
//   - Resolving secret references in configuration values (see Resolver)
//
// References use the prefix "secretref:":
//   - Full value:  secretref:env:JWT_SIGNING_SECRET
//   - File-backed: secretref:file:/run/secrets/jwt_secret
//   - Inline use:  Bearer secretref:env:SERVICE_TOKEN
//
// The env and file providers ship in this package; anything else
// registers through the Registry.
package secret
