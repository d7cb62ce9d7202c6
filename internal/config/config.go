// Package config defines the governance toolkit's configuration
// surface: server identity, attestation signing, scanner policy,
// lockfile location, and the observability/HTTP/index surfaces that
// wrap the core. Adapted from the teacher's internal/config package —
// same Config-struct-plus-Validate-plus-Load shape, scoped down from
// ~40 upstream-proxy concerns to the handful governance needs.
package config

import "fmt"

// Config is the governance toolkit's top-level configuration.
type Config struct {
	// ServerName identifies the MCP server whose capability surface is
	// governed (used as CapabilityLockfile.serverName and in audit records).
	ServerName string `json:"server_name" mapstructure:"server-name"`

	// FusionVersion is recorded in lockfiles as an informational semver
	// string (never blocks freshness — see SPEC_FULL §3 Open Question).
	FusionVersion string `json:"fusion_version" mapstructure:"fusion-version"`

	// DataDir holds the lockfile, audit log, and search index on disk.
	DataDir string `json:"data_dir" mapstructure:"data-dir"`

	// LockfileName is the filename written under DataDir (default fusion.lock.json).
	LockfileName string `json:"lockfile_name" mapstructure:"lockfile-name"`

	Attestation AttestationConfig `json:"attestation" mapstructure:"attestation"`
	Scanner     ScannerConfig     `json:"scanner" mapstructure:"scanner"`
	Logging     LogConfig         `json:"logging" mapstructure:"logging"`
	HTTP        HTTPConfig        `json:"http" mapstructure:"http"`
	Index       IndexConfig       `json:"index" mapstructure:"index"`
	Tracing     TracingConfig     `json:"tracing" mapstructure:"tracing"`
}

// AttestationConfig selects and configures the C9 signer.
type AttestationConfig struct {
	// Signer selects the pluggable signer: "hmac" (default) or "jwt".
	Signer string `json:"signer" mapstructure:"signer"`

	// SecretEnv names the environment variable holding the signer secret.
	// The secret itself is never persisted to config files.
	SecretEnv string `json:"secret_env" mapstructure:"secret-env"`

	// ExpectedDigest, if set, pins the server digest attestation must match.
	ExpectedDigest string `json:"expected_digest,omitempty" mapstructure:"expected-digest"`

	// FailOnMismatch controls whether verifyCapabilityPin throws on drift.
	FailOnMismatch bool `json:"fail_on_mismatch" mapstructure:"fail-on-mismatch"`
}

// ScannerConfig configures the C4 static entitlement scanner's claims check.
type ScannerConfig struct {
	// Allowed lists entitlement categories exempted from the generic
	// category-wide violation rule (see spec.md §4.3 "allowed list").
	Allowed []string `json:"allowed,omitempty" mapstructure:"allowed"`
}

// LogConfig mirrors logs.Config so it can be loaded via viper/mapstructure.
type LogConfig struct {
	Level         string `json:"level" mapstructure:"level"`
	EnableConsole bool   `json:"enable_console" mapstructure:"enable-console"`
	EnableFile    bool   `json:"enable_file" mapstructure:"enable-file"`
	LogDir        string `json:"log_dir,omitempty" mapstructure:"log-dir"`
	JSON          bool   `json:"json" mapstructure:"json"`
}

// HTTPConfig configures the read-only governance HTTP surface (C11 supplement).
type HTTPConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Listen  string `json:"listen" mapstructure:"listen"`
}

// IndexConfig configures the bleve-backed capability search index.
type IndexConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path,omitempty" mapstructure:"path"`
}

// TracingConfig configures the OTLP exporter the governance observer uses.
type TracingConfig struct {
	Enabled        bool   `json:"enabled" mapstructure:"enabled"`
	OTLPEndpoint   string `json:"otlp_endpoint,omitempty" mapstructure:"otlp-endpoint"`
	MetricsEnabled bool   `json:"metrics_enabled" mapstructure:"metrics-enabled"`
}

// Default returns a Config usable without any file or environment input.
func Default() *Config {
	return &Config{
		ServerName:    "mcp-server",
		FusionVersion: "0.1.0",
		DataDir:       ".mcp-fusion",
		LockfileName:  "fusion.lock.json",
		Attestation: AttestationConfig{
			Signer:    "hmac",
			SecretEnv: "MCP_FUSION_ATTESTATION_SECRET",
		},
		Logging: LogConfig{
			Level:         "info",
			EnableConsole: true,
		},
		HTTP: HTTPConfig{
			Listen: "127.0.0.1:8085",
		},
		Index: IndexConfig{
			Path: "capabilities.bleve",
		},
	}
}

// Validate checks the configuration is internally consistent, mirroring
// the teacher's Config.Validate contract (return the first error found).
func (c *Config) Validate() error {
	if c.ServerName == "" {
		return fmt.Errorf("server-name must not be empty")
	}
	if c.LockfileName == "" {
		return fmt.Errorf("lockfile-name must not be empty")
	}
	switch c.Attestation.Signer {
	case "hmac", "jwt":
	default:
		return fmt.Errorf("attestation.signer must be \"hmac\" or \"jwt\", got %q", c.Attestation.Signer)
	}
	for _, a := range c.Scanner.Allowed {
		switch a {
		case "filesystem", "network", "subprocess", "crypto", "codeEvaluation":
		default:
			return fmt.Errorf("scanner.allowed contains unknown entitlement category %q", a)
		}
	}
	return nil
}
