// Package config loads vcprover's static configuration: ledger/agency
// endpoints, cache behaviour, the link-secret alias, and the demo
// control-plane API, layering environment variables over a YAML file over
// built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the top-level vcprover configuration.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (VCPROVER_*, highest priority)
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
//
// No command-line flag sets a configuration value; --config only selects
// the file. Environment variables are applied only when a configuration
// file is found (see Load).
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Telemetry controls OpenTelemetry distributed tracing
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`

	// Agency configures the HTTP agency client used by pkg/messaging/agencyclient.
	Agency AgencyConfig `mapstructure:"agency" yaml:"agency"`

	// Ledger configures the ledger collaborator (pkg/ledgerrpc).
	Ledger LedgerConfig `mapstructure:"ledger" yaml:"ledger"`

	// Cache specifies the revocation-state cache behaviour.
	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`

	// LinkSecretAlias names the wallet link secret used for proof creation.
	LinkSecretAlias string `mapstructure:"link_secret_alias" validate:"required" yaml:"link_secret_alias"`

	// Metrics contains Prometheus metrics collection configuration
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// ControlPlane contains the demo REST API server configuration
	ControlPlane APIConfig `mapstructure:"controlplane" yaml:"controlplane"`

	// WalletStore configures optional Postgres-backed presentation history.
	WalletStore WalletStoreConfig `mapstructure:"walletstore" yaml:"walletstore"`
}

// AgencyConfig configures the HTTP client used to download/ack messages
// from the agent's mediator (agency).
type AgencyConfig struct {
	// BaseURL is the agency's base HTTP URL.
	BaseURL string `mapstructure:"base_url" validate:"required,url" yaml:"base_url"`

	// Token is a bearer token attached to every agency request, if set.
	Token string `mapstructure:"token" yaml:"token,omitempty"`

	// Timeout is validated (required, > 0) but is not passed to the agency
	// client, which applies its own fixed 30s timeout to every call.
	Timeout time.Duration `mapstructure:"timeout" validate:"required,gt=0" yaml:"timeout"`
}

// LedgerConfig configures the gRPC client used to reach a ledger node for
// schema, cred-def, and revocation-registry reads.
type LedgerConfig struct {
	// Endpoint is the ledger node's gRPC address (host:port).
	Endpoint string `mapstructure:"endpoint" validate:"required" yaml:"endpoint"`

	// Insecure disables TLS for the gRPC connection (local development only).
	Insecure bool `mapstructure:"insecure" yaml:"insecure"`

	// Timeout bounds every individual ledger RPC.
	Timeout time.Duration `mapstructure:"timeout" validate:"required,gt=0" yaml:"timeout"`
}

// CacheConfig specifies the revocation-state cache's behaviour.
type CacheConfig struct {
	// TTL is loaded and defaulted (zero becomes 24h), but the revocation
	// builder does not consult it: cached revocation states do not expire,
	// and reuse depends only on the requested window.
	TTL time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output.
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format specifies the log output format: text or json
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output specifies where logs are written: stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// TelemetryConfig controls OpenTelemetry distributed tracing. When enabled,
// spans are exported to an OTLP-compatible collector.
type TelemetryConfig struct {
	// Enabled controls whether distributed tracing is enabled
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Endpoint is the OTLP collector endpoint (host:port), required when Enabled.
	Endpoint string `mapstructure:"endpoint" validate:"required_if=Enabled true" yaml:"endpoint"`

	// Insecure controls whether to use an insecure (non-TLS) connection
	Insecure bool `mapstructure:"insecure" yaml:"insecure"`

	// SampleRate controls the trace sampling rate (0.0 to 1.0)
	SampleRate float64 `mapstructure:"sample_rate" validate:"omitempty,gte=0,lte=1" yaml:"sample_rate"`
}

// MetricsConfig configures Prometheus metrics collection. No HTTP endpoint
// serving the metrics is started.
type MetricsConfig struct {
	// Enabled controls whether metrics collection (the process-wide
	// registry) is enabled
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Port is validated and reported in the startup log; nothing listens on it
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`
}

// APIConfig configures the demo control-plane REST server.
type APIConfig struct {
	// Port is the HTTP port the control-plane API listens on.
	Port int `mapstructure:"port" validate:"required,min=1,max=65535" yaml:"port"`

	// JWTSecret signs and verifies the bearer tokens guarding the API.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required" yaml:"jwt_secret"`

	// JWTIssuer is the "iss" claim set on tokens the API mints; the issuer
	// of incoming tokens is not checked.
	JWTIssuer string `mapstructure:"jwt_issuer" yaml:"jwt_issuer"`

	// ReadTimeout bounds reading the entire request, including the body.
	ReadTimeout time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout bounds writing the response.
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`

	// IdleTimeout bounds how long a keep-alive connection waits for the next request.
	IdleTimeout time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
}

// WalletStoreConfig configures the optional Postgres-backed presentation
// history recorder (pkg/walletstore/postgres). History recording is
// disabled unless Enabled is set; the prover core itself never requires it.
type WalletStoreConfig struct {
	// Enabled turns on presentation-history recording.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Host is the Postgres server host, required when Enabled.
	Host string `mapstructure:"host" validate:"required_if=Enabled true" yaml:"host"`

	// Port is the Postgres server port.
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`

	// Database is the target database name, required when Enabled.
	Database string `mapstructure:"database" validate:"required_if=Enabled true" yaml:"database"`

	// User authenticates to Postgres, required when Enabled.
	User string `mapstructure:"user" validate:"required_if=Enabled true" yaml:"user"`

	// Password authenticates to Postgres.
	Password string `mapstructure:"password" yaml:"password,omitempty"`

	// SSLMode is the Postgres sslmode parameter.
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// Load loads configuration from file, environment, and defaults.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (VCPROVER_*)
//  2. Configuration file
//  3. Default values
//
// When no configuration file is found, the defaults are returned unchanged
// and environment variables are not applied.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	configFileFound, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	if !configFileFound {
		cfg := GetDefaultConfig()
		return cfg, nil
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves the configuration to the specified file path in YAML.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate runs go-playground/validator's struct-tag validation over cfg.
func Validate(cfg *Config) error {
	return validator.New().Struct(cfg)
}

// setupViper configures viper with environment variable and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	// Environment variables use the VCPROVER_ prefix and underscores.
	// Example: VCPROVER_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("VCPROVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		configDir := getConfigDir()
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
// Returns (fileFound, error) where fileFound indicates if a config file was found.
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}

	return true, nil
}

// configDecodeHooks returns a combined decode hook for custom types.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		durationDecodeHook(),
	)
}

// durationDecodeHook converts strings like "30s", "5m", "1h" to time.Duration.
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			return time.Duration(v), nil
		default:
			return data, nil
		}
	}
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "vcprover")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "vcprover")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists checks if a config file exists at the default location.
func DefaultConfigExists() bool {
	path := GetDefaultConfigPath()
	_, err := os.Stat(path)
	return err == nil
}

// GetConfigDir returns the configuration directory path (exposed for CLI commands).
func GetConfigDir() string {
	return getConfigDir()
}
