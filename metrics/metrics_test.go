package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder("deflate")
	r.AddRead(1024)
	r.AddRead(0)
	r.AddRead(512)
	r.AddChunk(300)
	r.AddChunk(20)
	r.AddError()

	assert.Equal(t, Stats{RawBytes: 1536, Chunks: 2, CompressedBytes: 320, Errors: 1}, r.Snapshot())
	assert.Equal(t, float64(1536), testutil.ToFloat64(r.rawBytes))
	assert.Equal(t, float64(2), testutil.ToFloat64(r.chunks))
	assert.Equal(t, float64(320), testutil.ToFloat64(r.compressedBytes))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.errors))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.AddRead(10)
	r.AddChunk(10)
	r.AddError()
	assert.Equal(t, Stats{}, r.Snapshot())
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder("zstd")
	r.AddChunk(42)

	families, err := r.Registry().Gather()
	require.NoError(t, err)
	assert.Len(t, families, 4)

	path := filepath.Join(t.TempDir(), "compressor.prom")
	require.NoError(t, r.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `compressor_compressed_bytes_total{codec="zstd"} 42`)
	assert.Contains(t, string(content), `compressor_chunks_total{codec="zstd"} 1`)
}
