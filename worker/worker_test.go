package worker

import (
	"bytes"
	"crypto/rand"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_fast_compress/codec"
	"go_fast_compress/compresserr"
	"go_fast_compress/metrics"
)

var errDiskGone = errors.New("disk gone")

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

func textBytes(n int) []byte {
	line := "chunked compression keeps every worker busy\n"
	return []byte(strings.Repeat(line, n/len(line)+1)[:n])
}

// runWorker runs a worker to completion and returns everything it sent
func runWorker(t *testing.T, r io.Reader, chunkSize int) []Message {
	t.Helper()
	out := make(chan Message)
	w := NewChunkWorker(0, chunkSize, codec.Deflate, out, nil, nil)
	go func() {
		w.Run(r)
		close(out)
	}()

	var msgs []Message
	for msg := range out {
		msgs = append(msgs, msg)
	}
	return msgs
}

func decodeChunks(t *testing.T, chunks []Chunk) []byte {
	t.Helper()
	var file, out bytes.Buffer
	for _, c := range chunks {
		file.Write(c.Data)
	}
	_, err := codec.Deflate.Decode(&out, &file)
	require.NoError(t, err)
	return out.Bytes()
}

// failingReader returns its data once, then fails
type failingReader struct {
	data []byte
	done bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if f.done {
		return 0, errDiskGone
	}
	f.done = true
	return copy(p, f.data), nil
}

func TestChunkWorkerSmallInputIsOneBlock(t *testing.T) {
	data := textBytes(4096)
	msgs := runWorker(t, bytes.NewReader(data), 1024)

	require.Len(t, msgs, 2)
	assert.Equal(t, MessageData, msgs[0].Kind)
	assert.Equal(t, 0, msgs[0].Chunk.Seq)
	assert.Equal(t, MessageDone, msgs[1].Kind)
	assert.Equal(t, data, decodeChunks(t, []Chunk{msgs[0].Chunk}))
}

func TestChunkWorkerSplitsOnCompressedSize(t *testing.T) {
	const chunkSize = 1024
	data := randomBytes(t, 256<<10)
	msgs := runWorker(t, bytes.NewReader(data), chunkSize)

	require.Equal(t, MessageDone, msgs[len(msgs)-1].Kind)
	var chunks []Chunk
	for i, msg := range msgs[:len(msgs)-1] {
		require.Equal(t, MessageData, msg.Kind)
		assert.Equal(t, i, msg.Chunk.Seq)
		chunks = append(chunks, msg.Chunk)
	}
	require.Greater(t, len(chunks), 1)

	// Every block but the last was closed because it crossed the threshold.
	for _, c := range chunks[:len(chunks)-1] {
		assert.GreaterOrEqual(t, len(c.Data), chunkSize)
	}
	assert.Equal(t, data, decodeChunks(t, chunks))
}

func TestChunkWorkerEmptyInput(t *testing.T) {
	msgs := runWorker(t, bytes.NewReader(nil), 1024)

	require.Len(t, msgs, 2)
	assert.Equal(t, MessageData, msgs[0].Kind)
	assert.NotNil(t, msgs[0].Chunk.Data)
	assert.Empty(t, decodeChunks(t, []Chunk{msgs[0].Chunk}))
	assert.Equal(t, MessageDone, msgs[1].Kind)
}

func TestChunkWorkerDataWithEOF(t *testing.T) {
	data := textBytes(3000)
	msgs := runWorker(t, iotest.DataErrReader(bytes.NewReader(data)), 1024)

	require.Len(t, msgs, 2)
	assert.Equal(t, data, decodeChunks(t, []Chunk{msgs[0].Chunk}))
}

func TestChunkWorkerReadErrorStopsWorker(t *testing.T) {
	msgs := runWorker(t, &failingReader{data: textBytes(512)}, 1024)

	require.Len(t, msgs, 1)
	assert.Equal(t, MessageError, msgs[0].Kind)
	assert.True(t, compresserr.IsIO(msgs[0].Err))
	assert.ErrorIs(t, msgs[0].Err, errDiskGone)
}

func TestChunkWorkerRecordsStats(t *testing.T) {
	stats := metrics.NewRecorder("deflate")
	out := make(chan Message, 4)
	NewChunkWorker(3, 1024, codec.Deflate, out, stats, nil).Run(bytes.NewReader(textBytes(2000)))

	msg := <-out
	assert.Equal(t, 3, msg.Worker)
	assert.Equal(t, 3, msg.Chunk.Worker)

	snap := stats.Snapshot()
	assert.Equal(t, uint64(2000), snap.RawBytes)
	assert.Equal(t, uint32(1), snap.Chunks)
	assert.Equal(t, uint64(len(msg.Chunk.Data)), snap.CompressedBytes)
}
