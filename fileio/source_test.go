package fileio

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func sequentialBytes(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return data
}

func TestPartition(t *testing.T) {
	tests := []struct {
		size    int64
		workers int
		index   int
		offset  int64
		length  int64
	}{
		{100, 4, 0, 0, 25},
		{100, 4, 3, 75, 25},
		{10, 3, 0, 0, 3},
		{10, 3, 1, 3, 3},
		{10, 3, 2, 6, 4},
		{2, 4, 0, 0, 0},
		{2, 4, 3, 0, 2},
		{0, 1, 0, 0, 0},
	}
	for _, tt := range tests {
		offset, length := Partition(tt.size, tt.workers, tt.index)
		assert.Equal(t, tt.offset, offset, "size %d workers %d index %d", tt.size, tt.workers, tt.index)
		assert.Equal(t, tt.length, length, "size %d workers %d index %d", tt.size, tt.workers, tt.index)
	}
}

func TestPartitionedSourceCoversFile(t *testing.T) {
	data := sequentialBytes(1001)
	path := writeTempFile(t, data)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	src, err := NewSource(file, ReadPartitioned)
	require.NoError(t, err)

	var joined []byte
	for i := 0; i < 4; i++ {
		r, err := src.Open(i, 4)
		require.NoError(t, err)
		part, err := io.ReadAll(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		joined = append(joined, part...)
	}
	assert.Equal(t, data, joined)
}

func TestPartitionedSourceMissingFile(t *testing.T) {
	src := &PartitionedSource{path: filepath.Join(t.TempDir(), "gone"), size: 10}
	_, err := src.Open(0, 1)
	assert.Error(t, err)
}

func TestSharedSourceSharesCursor(t *testing.T) {
	data := sequentialBytes(100)
	path := writeTempFile(t, data)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	src, err := NewSource(file, ReadShared)
	require.NoError(t, err)

	r0, err := src.Open(0, 2)
	require.NoError(t, err)
	r1, err := src.Open(1, 2)
	require.NoError(t, err)
	defer r1.Close()

	buf := make([]byte, 10)
	_, err = io.ReadFull(r0, buf)
	require.NoError(t, err)
	assert.Equal(t, data[:10], buf)

	// The second handle continues where the first stopped.
	_, err = io.ReadFull(r1, buf)
	require.NoError(t, err)
	assert.Equal(t, data[10:20], buf)

	// Closing one handle leaves the others usable.
	require.NoError(t, r0.Close())
	rest, err := io.ReadAll(r1)
	require.NoError(t, err)
	assert.Equal(t, data[20:], rest)
}

func TestParseReadStrategy(t *testing.T) {
	s, err := ParseReadStrategy("shared")
	require.NoError(t, err)
	assert.Equal(t, ReadShared, s)

	s, err = ParseReadStrategy("Partitioned")
	require.NoError(t, err)
	assert.Equal(t, ReadPartitioned, s)
	assert.Equal(t, "partitioned", s.String())

	_, err = ParseReadStrategy("mmap")
	assert.Error(t, err)
}
