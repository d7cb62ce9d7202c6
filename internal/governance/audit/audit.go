// Package audit is the governance toolkit's own append-only event log
// (SPEC_FULL.md §4 supplemented feature 1): every digest computation,
// diff, lockfile check, and attestation call is recorded here, the same
// way the teacher's internal/storage package records upstream tool
// activity -- except here governance itself is the thing being audited.
package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

const recordsBucket = "governance_audit_records"

// EventType enumerates the governance operations the audit trail tracks.
type EventType string

const (
	EventMaterialize EventType = "materialize"
	EventDigest      EventType = "digest"
	EventDiff        EventType = "diff"
	EventLockCheck   EventType = "lock_check"
	EventLockWrite   EventType = "lock_write"
	EventAttest      EventType = "attest"
	EventVerifyPin   EventType = "verify_pin"
	EventScan        EventType = "scan"
)

// Record is one immutable audit-log entry.
type Record struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	ToolName   string    `json:"toolName,omitempty"`
	ServerName string    `json:"serverName,omitempty"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// MarshalBinary implements encoding.BinaryMarshaler for bbolt storage.
func (r *Record) MarshalBinary() ([]byte, error) { return json.Marshal(r) }

// UnmarshalBinary implements encoding.BinaryUnmarshaler for bbolt storage.
func (r *Record) UnmarshalBinary(data []byte) error { return json.Unmarshal(data, r) }

// recordKey mirrors the teacher's activityKey: a zero-padded nanosecond
// timestamp followed by the record's ULID, so byte-order bucket iteration
// is chronological (oldest first).
func recordKey(timestamp time.Time, id string) []byte {
	return []byte(fmt.Sprintf("%020d_%s", timestamp.UnixNano(), id))
}

// Log is the bbolt-backed audit trail.
type Log struct {
	db     *bbolt.DB
	logger *zap.SugaredLogger
}

// Open opens (creating if absent) the audit database at path.
func Open(path string, logger *zap.SugaredLogger) (*Log, error) {
	db, err := bbolt.Open(path, 0644, &bbolt.Options{Timeout: 10 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(recordsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize audit bucket: %w", err)
	}

	return &Log{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (l *Log) Close() error { return l.db.Close() }

// Append writes one record, generating an ID and timestamp if unset.
func (l *Log) Append(r Record) error {
	if r.ID == "" {
		r.ID = ulid.Make().String()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}

	return l.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(recordsBucket))
		data, err := r.MarshalBinary()
		if err != nil {
			return fmt.Errorf("marshal audit record: %w", err)
		}
		return bucket.Put(recordKey(r.Timestamp, r.ID), data)
	})
}

// Filter narrows a Recent query.
type Filter struct {
	Type     EventType
	ToolName string
	Limit    int
}

// Recent returns the most recently appended records matching filter, in
// reverse-chronological (newest-first) order.
func (l *Log) Recent(filter Filter) ([]Record, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var out []Record
	err := l.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(recordsBucket))
		if bucket == nil {
			return nil
		}

		cursor := bucket.Cursor()
		for k, v := cursor.Last(); k != nil; k, v = cursor.Prev() {
			var record Record
			if err := record.UnmarshalBinary(v); err != nil {
				return fmt.Errorf("unmarshal audit record: %w", err)
			}
			if filter.Type != "" && record.Type != filter.Type {
				continue
			}
			if filter.ToolName != "" && record.ToolName != filter.ToolName {
				continue
			}
			out = append(out, record)
			if len(out) >= limit {
				break
			}
		}
		return nil
	})
	return out, err
}
