package logs

import (
	"regexp"

	"go.uber.org/zap/zapcore"
)

// secretSanitizer wraps a zapcore.Core and redacts attestation signer
// secrets from any field value before it reaches an output sink.
// Adapted from the teacher's SecretSanitizer (internal/logs/sanitizer.go),
// which redacted upstream OAuth tokens the same way; here the one secret
// that must never leak is the HMAC/JWT signer secret passed to the
// attestation engine.
type secretSanitizer struct {
	zapcore.Core
	patterns []*regexp.Regexp
}

var defaultSecretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(secret|hmac[_-]?key)["'=:\s]+[A-Za-z0-9+/=_-]{8,}`),
	regexp.MustCompile(`\bBearer\s+[A-Za-z0-9._-]{10,}`),
}

// NewSecretSanitizingCore wraps core so that any message or field value
// matching a known secret pattern is replaced with "***REDACTED***".
func NewSecretSanitizingCore(core zapcore.Core) zapcore.Core {
	return &secretSanitizer{Core: core, patterns: defaultSecretPatterns}
}

func (s *secretSanitizer) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if s.Enabled(entry.Level) {
		return ce.AddCore(entry, s)
	}
	return ce
}

func (s *secretSanitizer) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	entry.Message = s.redact(entry.Message)
	return s.Core.Write(entry, s.redactFields(fields))
}

func (s *secretSanitizer) redact(text string) string {
	for _, p := range s.patterns {
		text = p.ReplaceAllString(text, "***REDACTED***")
	}
	return text
}

// redactFields sanitizes string-valued fields into a new slice, leaving
// the original slice untouched for the caller.
func (s *secretSanitizer) redactFields(fields []zapcore.Field) []zapcore.Field {
	redacted := make([]zapcore.Field, len(fields))
	for i, f := range fields {
		if f.Type == zapcore.StringType {
			f.String = s.redact(f.String)
		}
		redacted[i] = f
	}
	return redacted
}

// With sanitizes fields accumulated via logger.With before they reach the
// wrapped core, matching Write's behavior: accumulated context must not
// bypass redaction just because it was never passed to Write directly.
func (s *secretSanitizer) With(fields []zapcore.Field) zapcore.Core {
	return &secretSanitizer{Core: s.Core.With(s.redactFields(fields)), patterns: s.patterns}
}
