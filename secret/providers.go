package secret

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// EnvProvider resolves references against the process environment. The
// ref is the variable name: secretref:env:JWT_SIGNING_SECRET.
type EnvProvider struct{}

// NewEnvProvider creates an environment-backed provider.
func NewEnvProvider() *EnvProvider {
	return &EnvProvider{}
}

// Name returns "env".
func (p *EnvProvider) Name() string { return "env" }

// Resolve looks up the named environment variable.
func (p *EnvProvider) Resolve(_ context.Context, ref string) (string, error) {
	value, ok := os.LookupEnv(ref)
	if !ok {
		return "", fmt.Errorf("environment variable %q is not set", ref)
	}
	return value, nil
}

// Close is a no-op.
func (p *EnvProvider) Close() error { return nil }

// FileProvider resolves references by reading files, the shape mounted
// secrets take under /run/secrets. The ref is the file path; a single
// trailing newline is stripped.
type FileProvider struct{}

// NewFileProvider creates a file-backed provider.
func NewFileProvider() *FileProvider {
	return &FileProvider{}
}

// Name returns "file".
func (p *FileProvider) Name() string { return "file" }

// Resolve reads the file at ref.
func (p *FileProvider) Resolve(_ context.Context, ref string) (string, error) {
	data, err := os.ReadFile(ref)
	if err != nil {
		return "", fmt.Errorf("read secret file: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// Close is a no-op.
func (p *FileProvider) Close() error { return nil }

func init() {
	_ = DefaultRegistry.Register("env", func(map[string]any) (Provider, error) {
		return NewEnvProvider(), nil
	})
	_ = DefaultRegistry.Register("file", func(map[string]any) (Provider, error) {
		return NewFileProvider(), nil
	})
}

// Ensure providers implement Provider
var (
	_ Provider = (*EnvProvider)(nil)
	_ Provider = (*FileProvider)(nil)
)
