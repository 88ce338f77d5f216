package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
)

// InitConfig writes a sample configuration file to the default location,
// failing if a file already exists there and force is not set.
func InitConfig(force bool) (string, error) {
	return GetDefaultConfigPath(), InitConfigToPath(GetDefaultConfigPath(), force)
}

// InitConfigToPath writes a sample configuration file to path, failing if
// a file already exists there and force is not set.
func InitConfigToPath(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists at %s (use --force to overwrite)", path)
		}
	}

	secret, err := randomHex(32)
	if err != nil {
		return fmt.Errorf("failed to generate JWT secret: %w", err)
	}

	cfg := GetDefaultConfig()
	cfg.ControlPlane.JWTSecret = secret

	if err := SaveConfig(cfg, path); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	return nil
}

// MustLoad loads configuration from configPath and validates it, returning
// an error that callers should treat as fatal.
func MustLoad(configPath string) (*Config, error) {
	cfg, err := Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
