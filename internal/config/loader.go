package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "MCP_FUSION"

// Load builds a Config from flags, environment, an optional config file,
// and defaults, in that precedence order — the same layering the
// teacher's config.Load establishes with viper, scoped to this module's
// fields. flags may be nil when no CLI flag set applies (e.g. in tests).
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	setDefaults(v, Default())

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	cfg := Default()

	// .toml files are decoded with BurntSushi/toml rather than viper's own
	// (pelletier-based) toml support; the decoded values are merged into
	// viper as its config-file layer, so env and flags still override them.
	if configPath != "" && strings.EqualFold(filepath.Ext(configPath), ".toml") {
		fileValues := map[string]interface{}{}
		if _, err := toml.DecodeFile(configPath, &fileValues); err != nil {
			return nil, fmt.Errorf("decode toml config file %s: %w", configPath, err)
		}
		if err := v.MergeConfigMap(fileValues); err != nil {
			return nil, fmt.Errorf("merge toml config file %s: %w", configPath, err)
		}
	} else if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", cfg.DataDir, err)
	}

	return cfg, nil
}

// LockfilePath resolves the full on-disk path of the governed lockfile.
func (c *Config) LockfilePath() string {
	return filepath.Join(c.DataDir, c.LockfileName)
}

// AttestationSecret reads the configured signer secret from its
// environment variable. It deliberately never lives in config file text.
func (c *Config) AttestationSecret() (string, error) {
	v := os.Getenv(c.Attestation.SecretEnv)
	if v == "" {
		return "", fmt.Errorf("attestation secret environment variable %q is not set", c.Attestation.SecretEnv)
	}
	return v, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server-name", d.ServerName)
	v.SetDefault("fusion-version", d.FusionVersion)
	v.SetDefault("data-dir", d.DataDir)
	v.SetDefault("lockfile-name", d.LockfileName)
	v.SetDefault("attestation.signer", d.Attestation.Signer)
	v.SetDefault("attestation.secret-env", d.Attestation.SecretEnv)
	v.SetDefault("attestation.fail-on-mismatch", d.Attestation.FailOnMismatch)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.enable-console", d.Logging.EnableConsole)
	v.SetDefault("http.listen", d.HTTP.Listen)
	v.SetDefault("index.path", d.Index.Path)
}
