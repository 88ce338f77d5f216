package config

import (
	"strings"
	"time"
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// Default strategy: zero values (0, "", false) are replaced with defaults;
// explicit values are preserved.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyAgencyDefaults(&cfg.Agency)
	applyLedgerDefaults(&cfg.Ledger)
	applyCacheDefaults(&cfg.Cache)
	applyMetricsDefaults(&cfg.Metrics)
	applyControlPlaneDefaults(&cfg.ControlPlane)
	applyWalletStoreDefaults(&cfg.WalletStore)

	if cfg.LinkSecretAlias == "" {
		cfg.LinkSecretAlias = "main"
	}
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}
}

func applyAgencyDefaults(cfg *AgencyConfig) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
}

func applyLedgerDefaults(cfg *LedgerConfig) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
}

func applyCacheDefaults(cfg *CacheConfig) {
	if cfg.TTL == 0 {
		cfg.TTL = 24 * time.Hour
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Port == 0 {
		cfg.Port = 9090
	}
}

func applyControlPlaneDefaults(cfg *APIConfig) {
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "vcprover"
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}
}

func applyWalletStoreDefaults(cfg *WalletStoreConfig) {
	if cfg.Port == 0 {
		cfg.Port = 5432
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
}

// GetDefaultConfig returns a Config populated entirely with defaults, for
// hosts that run without a config file.
func GetDefaultConfig() *Config {
	cfg := &Config{
		Agency: AgencyConfig{BaseURL: "http://localhost:8020"},
		Ledger: LedgerConfig{Endpoint: "localhost:9100", Insecure: true},
		ControlPlane: APIConfig{
			JWTSecret: "change-me",
		},
	}
	ApplyDefaults(cfg)
	return cfg
}
