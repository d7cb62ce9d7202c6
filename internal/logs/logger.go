// Package logs sets up structured logging for the governance CLI and
// HTTP surface, adapted from the teacher's internal/logs package:
// console + rotating-file zap cores selected by a LogConfig, scaled
// down to a single logger per process (there are no upstream server
// processes here to log separately).
package logs

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Config controls logger construction. Mirrors the teacher's LogConfig
// shape, trimmed of upstream-process fields that don't apply here.
type Config struct {
	Level         string `mapstructure:"level"`
	EnableConsole bool   `mapstructure:"enable-console"`
	EnableFile    bool   `mapstructure:"enable-file"`
	LogDir        string `mapstructure:"log-dir"`
	Filename      string `mapstructure:"filename"`
	MaxSizeMB     int    `mapstructure:"max-size-mb"`
	MaxBackups    int    `mapstructure:"max-backups"`
	MaxAgeDays    int    `mapstructure:"max-age-days"`
	Compress      bool   `mapstructure:"compress"`
	JSON          bool   `mapstructure:"json"`
}

// DefaultConfig returns console-only, human-readable logging.
func DefaultConfig() *Config {
	return &Config{
		Level:         LevelInfo,
		EnableConsole: true,
		Filename:      "governance.log",
		MaxSizeMB:     10,
		MaxBackups:    5,
		MaxAgeDays:    30,
		Compress:      true,
	}
}

// Setup builds a *zap.SugaredLogger from cfg, combining a console core
// and an optional rotating-file core exactly as the teacher's
// SetupLogger does, minus the upstream-server-specific loggers and
// log-tail reader (no subprocess fleet exists in this module).
func Setup(cfg *Config) (*zap.SugaredLogger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)

	var cores []zapcore.Core
	if cfg.EnableConsole {
		cores = append(cores, zapcore.NewCore(consoleEncoder(), zapcore.AddSync(os.Stderr), level))
	}
	if cfg.EnableFile {
		fileCore, err := fileCore(cfg, level)
		if err != nil {
			return nil, fmt.Errorf("build file core: %w", err)
		}
		cores = append(cores, fileCore)
	}
	if len(cores) == 0 {
		return nil, fmt.Errorf("no log outputs configured")
	}

	core := NewSecretSanitizingCore(zapcore.NewTee(cores...))
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return logger.Sugar(), nil
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case LevelDebug:
		return zap.DebugLevel
	case LevelWarn:
		return zap.WarnLevel
	case LevelError:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func fileCore(cfg *Config, level zapcore.Level) (zapcore.Core, error) {
	path, err := FilePath(cfg.LogDir, cfg.Filename)
	if err != nil {
		return nil, err
	}

	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}

	encoder := fileEncoder()
	if cfg.JSON {
		encoder = jsonEncoder()
	}
	return zapcore.NewCore(encoder, zapcore.AddSync(sink), level), nil
}

func consoleEncoder() zapcore.Encoder {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	ec.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewConsoleEncoder(ec)
}

func fileEncoder() zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	ec.EncodeCaller = zapcore.ShortCallerEncoder
	ec.ConsoleSeparator = " | "
	return zapcore.NewConsoleEncoder(ec)
}

func jsonEncoder() zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
	ec.EncodeLevel = zapcore.LowercaseLevelEncoder
	ec.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewJSONEncoder(ec)
}
