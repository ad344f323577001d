package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestige.xyz/callscript/internal/metrics"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestCacheReadsOnce(t *testing.T) {
	s := New()
	path := writeFile(t, "voice.rtp", []byte{0x80, 0x00, 0x01})

	before := testutil.ToFloat64(metrics.MediaCachedFiles)
	require.NoError(t, s.Cache(path))
	require.NoError(t, s.Cache(path))

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.MediaCachedFiles))

	data, ok := s.Get(path)
	require.True(t, ok)
	assert.Equal(t, []byte{0x80, 0x00, 0x01}, data)

	// later changes on disk are not observed
	require.NoError(t, os.WriteFile(path, []byte("changed"), 0o644))
	require.NoError(t, s.Cache(path))
	data, _ = s.Get(path)
	assert.Equal(t, []byte{0x80, 0x00, 0x01}, data)

	s.Flush()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, before, testutil.ToFloat64(metrics.MediaCachedFiles))
}

func TestCacheMissingFile(t *testing.T) {
	s := New()
	err := s.Cache(filepath.Join(t.TempDir(), "missing.rtp"))
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestCacheEmptyFile(t *testing.T) {
	s := New()
	path := writeFile(t, "empty.rtp", nil)

	err := s.Cache(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad format")

	_, ok := s.Get(path)
	assert.False(t, ok)
}

func TestParsedEntriesAreSeparate(t *testing.T) {
	s := New()
	s.SetParsed("capture.pcap", 42)

	v, ok := s.Parsed("capture.pcap")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = s.Get("capture.pcap")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}
