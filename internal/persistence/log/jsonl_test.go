package log

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	N int `json:"n"`
}

func TestSegment_NameAndParse(t *testing.T) {
	hour := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	cases := []struct {
		seg  Segment
		name string
	}{
		{Segment{Prefix: "ticks", Hour: hour}, "ticks-2026-01-02-03.jsonl.zst"},
		{Segment{Prefix: "ticks", Run: "run_1", Hour: hour}, "ticks-run_1-2026-01-02-03.jsonl.zst"},
		{Segment{Prefix: "ticks", Run: "exp-7", Hour: hour}, "ticks-exp-7-2026-01-02-03.jsonl.zst"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.name, tc.seg.Name())
		got, ok := ParseSegment(tc.name, "ticks")
		require.True(t, ok, tc.name)
		assert.Equal(t, tc.seg.Run, got.Run)
		assert.True(t, tc.seg.Hour.Equal(got.Hour), tc.name)
	}
}

func TestParseSegment_Rejects(t *testing.T) {
	for _, name := range []string{
		"ticks-dir.jsonl.zst",
		"ticks-2026-01-02-03.jsonl",
		"audit-2026-01-02-03.jsonl.zst",
		"ticks--2026-01-02-03.jsonl.zst",
		"ticks-run2026-01-02-03.jsonl.zst",
		"ticks-2026-13-02-03.jsonl.zst",
	} {
		_, ok := ParseSegment(name, "ticks")
		assert.False(t, ok, name)
	}
}

func TestJSONLZstdWriter_RotatesHourly(t *testing.T) {
	dir := t.TempDir()
	w := NewJSONLZstdWriter(dir, "ticks", "")
	now := time.Date(2026, 1, 2, 3, 59, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	require.NoError(t, w.Write(line{N: 1}))
	now = now.Add(2 * time.Minute)
	require.NoError(t, w.Write(line{N: 2}))
	require.NoError(t, w.Close())

	_, err := os.Stat(filepath.Join(dir, "ticks-2026-01-02-03.jsonl.zst"))
	require.NoError(t, err)

	var got []int
	require.NoError(t, ReadJSONL(filepath.Join(dir, "ticks-2026-01-02-04.jsonl.zst"), func(l line) error {
		got = append(got, l.N)
		return nil
	}))
	assert.Equal(t, []int{2}, got)
}

func TestJSONLZstdWriter_ReopenAppends(t *testing.T) {
	dir := t.TempDir()
	fixed := time.Date(2026, 5, 5, 5, 0, 0, 0, time.UTC)

	for i := 1; i <= 2; i++ {
		w := NewJSONLZstdWriter(dir, "ticks", "r")
		w.now = func() time.Time { return fixed }
		require.NoError(t, w.Write(line{N: i}))
		require.NoError(t, w.Close())
	}

	var got []int
	require.NoError(t, ReadJSONL(filepath.Join(dir, "ticks-r-2026-05-05-05.jsonl.zst"), func(l line) error {
		got = append(got, l.N)
		return nil
	}))
	assert.Equal(t, []int{1, 2}, got)
}

func TestJSONLZstdWriter_FlushAndCloseIdle(t *testing.T) {
	w := NewJSONLZstdWriter(t.TempDir(), "ticks", "")
	assert.NoError(t, w.Flush())
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestReadJSONL_BadLine(t *testing.T) {
	dir := t.TempDir()
	w := NewJSONLZstdWriter(dir, "ticks", "")
	fixed := time.Date(2026, 5, 5, 5, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return fixed }
	require.NoError(t, w.Write("not an object"))
	require.NoError(t, w.Close())

	err := ReadJSONL(filepath.Join(dir, "ticks-2026-05-05-05.jsonl.zst"), func(line) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ticks-2026-05-05-05.jsonl.zst:1")
}
