package worker

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go_fast_compress/codec"
	"go_fast_compress/compresserr"
	"go_fast_compress/logging"
	"go_fast_compress/metrics"
)

// Collect decides how many messages the collector waits for
type Collect int

const (
	// CollectBounded receives exactly one message per worker and stops at the first Done.
	// Blocks sent after that are discarded.
	CollectBounded Collect = iota
	// CollectAll receives until every worker has sent Done.
	CollectAll
)

func (c Collect) String() string {
	switch c {
	case CollectBounded:
		return "bounded"
	case CollectAll:
		return "all"
	default:
		return "unknown"
	}
}

// ParseCollect maps a flag value to a Collect policy
func ParseCollect(s string) (Collect, error) {
	switch strings.ToLower(s) {
	case "bounded":
		return CollectBounded, nil
	case "all":
		return CollectAll, nil
	default:
		return CollectBounded, fmt.Errorf("invalid collect policy: %s", s)
	}
}

// Options configures a compression run
type Options struct {
	Workers   int
	ChunkSize int
	Codec     codec.Codec
	Order     Order
	Collect   Collect
}

// Collector spawns the chunk workers and gathers their blocks
type Collector struct {
	opts   Options
	stats  *metrics.Recorder
	logger *zap.Logger
}

// NewCollector validates opts. A nil codec selects deflate.
func NewCollector(opts Options, stats *metrics.Recorder, logger *zap.Logger) (*Collector, error) {
	if opts.Workers < 1 {
		return nil, fmt.Errorf("worker count must be positive, got %d", opts.Workers)
	}
	if opts.ChunkSize < 1 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", opts.ChunkSize)
	}
	if opts.Codec == nil {
		opts.Codec = codec.Deflate
	}
	return &Collector{opts: opts, stats: stats, logger: logging.OrNop(logger)}, nil
}

// Compress runs one worker per configured slot against src and returns the ordered chunks.
// Every spawned worker has exited by the time Compress returns, on success or failure.
func (c *Collector) Compress(src Source) ([]Chunk, error) {
	results := make(chan Message, c.opts.Workers)

	var g errgroup.Group
	var failure error
	for i := 0; i < c.opts.Workers; i++ {
		r, err := src.Open(i, c.opts.Workers)
		if err != nil {
			failure = compresserr.IOError(fmt.Errorf("open input for worker %d: %w", i, err))
			c.logger.Error("Failed to start worker", zap.Int("worker", i), zap.Error(err))
			break
		}
		w := NewChunkWorker(i, c.opts.ChunkSize, c.opts.Codec, results, c.stats, c.logger)
		g.Go(func() error {
			defer r.Close()
			w.Run(r)
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()

	var chunks []Chunk
	if failure == nil {
		if c.opts.Collect == CollectAll {
			chunks, failure = c.receiveAll(results)
		} else {
			chunks, failure = c.receiveBounded(results)
		}
	}

	// Join: keep draining so no worker blocks on a send nobody will receive.
	discarded := 0
	for msg := range results {
		if msg.Kind == MessageData {
			discarded++
		}
	}
	if discarded > 0 {
		c.logger.Debug("Discarded chunks received after collection ended", zap.Int("chunks", discarded))
	}

	if failure != nil {
		return nil, failure
	}
	return c.opts.Order.Arrange(chunks), nil
}

// receiveBounded takes exactly one message per worker, stopping early at the first Done
func (c *Collector) receiveBounded(results <-chan Message) ([]Chunk, error) {
	var chunks []Chunk
	for i := 0; i < c.opts.Workers; i++ {
		msg, ok := <-results
		if !ok {
			c.logger.Error("Failed to receive compressed data", zap.Error(errResultsClosed))
			continue
		}
		switch msg.Kind {
		case MessageData:
			chunks = append(chunks, msg.Chunk)
		case MessageError:
			c.logger.Error("Failed to compress data", zap.Int("worker", msg.Worker), zap.Error(msg.Err))
			return nil, msg.Err
		case MessageDone:
			return chunks, nil
		}
	}
	return chunks, nil
}

// receiveAll takes messages until every worker has reported Done
func (c *Collector) receiveAll(results <-chan Message) ([]Chunk, error) {
	var chunks []Chunk
	remaining := c.opts.Workers
	for remaining > 0 {
		msg, ok := <-results
		if !ok {
			c.logger.Error("Failed to receive compressed data", zap.Error(errResultsClosed))
			break
		}
		switch msg.Kind {
		case MessageData:
			chunks = append(chunks, msg.Chunk)
		case MessageError:
			c.logger.Error("Failed to compress data", zap.Int("worker", msg.Worker), zap.Error(msg.Err))
			return nil, msg.Err
		case MessageDone:
			remaining--
		}
	}
	return chunks, nil
}

var errResultsClosed = errors.New("result channel closed")
