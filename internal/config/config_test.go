package config

import (
	"strings"
	"testing"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if err := Validate(cfg); err != nil {
		t.Errorf("expected default config to pass validation, got error: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "TRACE"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for invalid log level")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Errorf("expected 'oneof' validation error, got: %v", err)
	}
}

func TestValidate_MissingLinkSecretAlias(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.LinkSecretAlias = ""

	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for missing link secret alias")
	}
}

func TestValidate_InvalidAgencyURL(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Agency.BaseURL = "not a url"

	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for malformed agency base url")
	}
}

func TestValidate_ControlPlanePortOutOfRange(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.ControlPlane.Port = 70000

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for port out of range")
	}
	if !strings.Contains(err.Error(), "max") {
		t.Errorf("expected 'max' validation error, got: %v", err)
	}
}

func TestValidate_TelemetryEnabledRequiresEndpoint(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.Endpoint = ""

	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for telemetry enabled without endpoint")
	}
}

func TestValidate_LogLevelNormalization(t *testing.T) {
	for _, level := range []string{"info", "INFO", "debug", "warn", "error"} {
		cfg := GetDefaultConfig()
		cfg.Logging.Level = level

		if err := Validate(cfg); err != nil {
			t.Errorf("validation failed for level %q: %v", level, err)
		}
	}

	cfg := &Config{Logging: LoggingConfig{Level: "info"}}
	ApplyDefaults(cfg)
	if cfg.Logging.Level != "INFO" {
		t.Errorf("expected ApplyDefaults to normalize 'info' to 'INFO', got %q", cfg.Logging.Level)
	}
}

func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "INFO" || cfg.Logging.Format != "text" || cfg.Logging.Output != "stdout" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.LinkSecretAlias != "main" {
		t.Errorf("expected default link secret alias 'main', got %q", cfg.LinkSecretAlias)
	}
	if cfg.ControlPlane.Port != 8080 {
		t.Errorf("expected default control-plane port 8080, got %d", cfg.ControlPlane.Port)
	}
	if cfg.Metrics.Port != 9090 {
		t.Errorf("expected default metrics port 9090, got %d", cfg.Metrics.Port)
	}
}

func TestLoad_NoConfigFileUsesDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "INFO" {
		t.Errorf("expected default logging level, got %q", cfg.Logging.Level)
	}
}
