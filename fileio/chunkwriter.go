package fileio

import (
	"bufio"
	"fmt"
	"hash"
	"io"

	"go_fast_compress/compresserr"
	"go_fast_compress/worker"
)

// ChunkWriter concatenates compressed chunks into the output, in the order given
type ChunkWriter struct {
	writer  *bufio.Writer
	hash    hash.Hash
	written int64
}

// NewChunkWriter wraps out with a buffer of bufferSize bytes and an optional running checksum
func NewChunkWriter(out io.Writer, bufferSize int, method ChecksumMethod) *ChunkWriter {
	return &ChunkWriter{
		writer: bufio.NewWriterSize(out, bufferSize),
		hash:   NewHash(method),
	}
}

// Write emits every chunk back to back with no framing.
// It stops at the first failure; bytes already written stay in place.
func (b *ChunkWriter) Write(chunks []worker.Chunk) error {
	for i, chunk := range chunks {
		n, err := b.writer.Write(chunk.Data)
		b.written += int64(n)
		if err != nil {
			return compresserr.IOError(fmt.Errorf("write chunk %d: %w", i, err))
		}

		// Update hash.
		if b.hash != nil {
			b.hash.Write(chunk.Data)
		}
	}

	// Write any remaining bytes.
	if err := b.writer.Flush(); err != nil {
		return compresserr.IOError(fmt.Errorf("flush output: %w", err))
	}
	return nil
}

// Written returns the number of bytes accepted so far
func (b *ChunkWriter) Written() int64 {
	return b.written
}

// Checksum returns the digest of everything written, or nil when disabled
func (b *ChunkWriter) Checksum() []byte {
	if b.hash == nil {
		return nil
	}
	return b.hash.Sum(nil)
}
