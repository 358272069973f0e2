package worker

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"go_fast_compress/codec"
	"go_fast_compress/compresserr"
	"go_fast_compress/logging"
	"go_fast_compress/metrics"
)

// ChunkWorker compresses whatever it can read into blocks of roughly chunkSize compressed bytes
type ChunkWorker struct {
	id        int
	chunkSize int
	codec     codec.Codec
	out       chan<- Message
	stats     *metrics.Recorder
	logger    *zap.Logger
}

// NewChunkWorker prepares a worker sending its results to out
func NewChunkWorker(id, chunkSize int, c codec.Codec, out chan<- Message, stats *metrics.Recorder, logger *zap.Logger) *ChunkWorker {
	return &ChunkWorker{
		id:        id,
		chunkSize: chunkSize,
		codec:     c,
		out:       out,
		stats:     stats,
		logger:    logging.OrNop(logger),
	}
}

// Run reads r until it is exhausted or fails.
// The threshold is checked against compressed output, so block boundaries depend on the data.
func (w *ChunkWorker) Run(r io.Reader) {
	buf := make([]byte, w.chunkSize)
	seq := 0

	enc, err := w.codec.NewEncoder()
	if err != nil {
		w.fail(fmt.Errorf("create %s encoder: %w", w.codec.Name(), err))
		return
	}

	for {
		read, rerr := r.Read(buf)
		if read > 0 {
			w.stats.AddRead(read)
			if _, err := enc.Write(buf[:read]); err != nil {
				w.fail(fmt.Errorf("compress: %w", err))
				return
			}

			if enc.Len() >= w.chunkSize {
				if !w.emit(enc, seq) {
					return
				}
				seq++
				if enc, err = w.codec.NewEncoder(); err != nil {
					w.fail(fmt.Errorf("create %s encoder: %w", w.codec.Name(), err))
					return
				}
			}
		}

		if rerr == io.EOF || (read == 0 && rerr == nil) {
			break
		}
		if rerr != nil {
			w.fail(fmt.Errorf("read input: %w", rerr))
			return
		}
	}

	// Input exhausted: whatever is pending becomes the last block, even below threshold.
	if !w.emit(enc, seq) {
		return
	}
	w.out <- Message{Kind: MessageDone, Worker: w.id}
}

// emit finalizes enc and sends the block, reporting whether the worker may continue
func (w *ChunkWorker) emit(enc codec.Encoder, seq int) bool {
	block, err := enc.Finish()
	if err != nil {
		w.fail(fmt.Errorf("finalize block %d: %w", seq, err))
		return false
	}

	w.stats.AddChunk(len(block))
	w.logger.Debug("Chunk finalized",
		zap.Int("worker", w.id),
		zap.Int("seq", seq),
		zap.Int("size", len(block)))

	w.out <- Message{
		Kind:   MessageData,
		Worker: w.id,
		Chunk:  Chunk{Worker: w.id, Seq: seq, Data: block},
	}
	return true
}

func (w *ChunkWorker) fail(err error) {
	w.stats.AddError()
	w.out <- Message{Kind: MessageError, Worker: w.id, Err: compresserr.IOError(err)}
}
