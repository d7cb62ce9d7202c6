package audit

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.db")
	log, err := Open(path, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })
	return log
}

func TestAppend_GeneratesIDAndTimestampWhenUnset(t *testing.T) {
	log := openTestLog(t)

	err := log.Append(Record{Type: EventDigest, ToolName: "search", Outcome: "success"})
	require.NoError(t, err)

	records, err := log.Recent(Filter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].ID)
	assert.False(t, records[0].Timestamp.IsZero())
}

func TestRecent_ReturnsNewestFirst(t *testing.T) {
	log := openTestLog(t)

	require.NoError(t, log.Append(Record{Type: EventDigest, ToolName: "a", Outcome: "success"}))
	require.NoError(t, log.Append(Record{Type: EventDiff, ToolName: "b", Outcome: "success"}))
	require.NoError(t, log.Append(Record{Type: EventAttest, ToolName: "c", Outcome: "success"}))

	records, err := log.Recent(Filter{})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, EventAttest, records[0].Type)
	assert.Equal(t, EventDiff, records[1].Type)
	assert.Equal(t, EventDigest, records[2].Type)
}

func TestRecent_FiltersByType(t *testing.T) {
	log := openTestLog(t)

	require.NoError(t, log.Append(Record{Type: EventDigest, ToolName: "a", Outcome: "success"}))
	require.NoError(t, log.Append(Record{Type: EventDiff, ToolName: "a", Outcome: "success"}))

	records, err := log.Recent(Filter{Type: EventDiff})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, EventDiff, records[0].Type)
}

func TestRecent_FiltersByToolName(t *testing.T) {
	log := openTestLog(t)

	require.NoError(t, log.Append(Record{Type: EventDigest, ToolName: "a", Outcome: "success"}))
	require.NoError(t, log.Append(Record{Type: EventDigest, ToolName: "b", Outcome: "success"}))

	records, err := log.Recent(Filter{ToolName: "b"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "b", records[0].ToolName)
}

func TestRecent_RespectsLimit(t *testing.T) {
	log := openTestLog(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, log.Append(Record{Type: EventScan, Outcome: "success"}))
	}

	records, err := log.Recent(Filter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRecent_EmptyLogReturnsEmpty(t *testing.T) {
	log := openTestLog(t)

	records, err := log.Recent(Filter{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	log, err := Open(path, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	require.NoError(t, log.Append(Record{Type: EventLockWrite, Outcome: "success"}))
	require.NoError(t, log.Close())

	reopened, err := Open(path, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.Recent(Filter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, EventLockWrite, records[0].Type)
}
