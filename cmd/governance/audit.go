package main

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/audit"
	"github.com/vinkius-labs/mcp-fusion-go/internal/logs"
)

// openAudit opens the governance audit trail under the configured data
// directory. Failures to open it are logged but never abort a command --
// the audit trail is a supplemental record of what governance did, not a
// precondition for doing it, mirroring the teacher's activity store which
// never blocks a tool call on its own write path.
func openAudit(state *cliState) (*audit.Log, *zap.SugaredLogger) {
	logger, err := logs.Setup(logs.DefaultConfig())
	if err != nil {
		return nil, nil
	}

	path := filepath.Join(state.cfg.DataDir, "audit.bbolt")
	log, err := audit.Open(path, logger)
	if err != nil {
		logger.Warnw("could not open governance audit trail", "path", path, "error", err)
		return nil, logger
	}
	return log, logger
}

// appendAudit records r if log is non-nil, logging (not returning) any
// write failure since audit is best-effort.
func appendAudit(log *audit.Log, logger *zap.SugaredLogger, r audit.Record) {
	if log == nil {
		return
	}
	if err := log.Append(r); err != nil && logger != nil {
		logger.Warnw("failed to append governance audit record", "type", r.Type, "error", err)
	}
}

// outcomeOf renders a plain success/failure outcome string for an audit record.
func outcomeOf(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
