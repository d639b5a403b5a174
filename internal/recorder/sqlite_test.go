package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRecorder(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "stox.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	require.NoError(t, r.RecordRefresh(&RefreshEvent{Symbol: "AAPL", Generation: 3, Price: "$150.01", Last: 150.01, OK: true}))
	require.NoError(t, r.RecordRefresh(&RefreshEvent{Symbol: "AAPL", Generation: 4, Stale: true, At: time.Unix(1, 0)}))
	require.NoError(t, r.RecordRefresh(&RefreshEvent{Symbol: "MSFT", Error: "boom"}))
	require.NoError(t, r.RecordChart(&ChartEvent{Symbol: "AAPL", Range: "1d", Height: 200, Points: 13, Labels: 7}))
	require.NoError(t, r.RecordChart(&ChartEvent{Symbol: "AAPL", Range: "7h", Stage: "labels", Error: "unimplemented range"}))

	n, err := r.CountRefreshes("AAPL")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var charts int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM chart_builds WHERE stage = ''`).Scan(&charts))
	assert.Equal(t, 1, charts)
}

func TestSQLiteRecorder_ReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stox.db")
	r, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	require.NoError(t, r.RecordRefresh(&RefreshEvent{Symbol: "AAPL", OK: true}))
	require.NoError(t, r.Close())

	r, err = NewSQLiteRecorder(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	n, err := r.CountRefreshes("AAPL")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordRefresh(&RefreshEvent{}))
	assert.NoError(t, r.RecordChart(&ChartEvent{}))
	assert.NoError(t, r.Close())
}
