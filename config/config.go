package config

import (
	"fmt"
	"strconv"

	"go_fast_compress/codec"
	"go_fast_compress/constants"
	"go_fast_compress/fileio"
	"go_fast_compress/worker"
)

// Config holds the command line values of one run
type Config struct {
	Input       string
	Output      string
	Threads     int
	ChunkSize   int
	Codec       string
	Order       string
	Read        string
	Collect     string
	Checksum    string
	Decompress  bool
	MetricsPath string
	Strict      bool
	Verbose     bool
}

// Settings are the policy values resolved from a Config
type Settings struct {
	Codec    codec.Codec
	Order    worker.Order
	Read     fileio.ReadStrategy
	Collect  worker.Collect
	Checksum fileio.ChecksumMethod
}

// Default returns the flag defaults
func Default() Config {
	return Config{
		Threads:   constants.DEFAULT_NUM_WORKERS,
		ChunkSize: constants.DEFAULT_CHUNK_SIZE,
		Codec:     constants.DEFAULT_CODEC,
		Order:     constants.DEFAULT_ORDER,
		Read:      constants.DEFAULT_READ,
		Collect:   constants.DEFAULT_COLLECT,
		Checksum:  constants.DEFAULT_CHECKSUM,
	}
}

// Validate clamps numeric values into their supported range.
// Every adjustment is described in the returned notes.
func (c *Config) Validate() []string {
	var notes []string

	if c.ChunkSize > constants.MAX_CHUNK_SIZE {
		c.ChunkSize = constants.MAX_CHUNK_SIZE
		notes = append(notes, "Chunk size above maximum. Using "+strconv.Itoa(c.ChunkSize))
	} else if c.ChunkSize < constants.MIN_CHUNK_SIZE {
		c.ChunkSize = constants.MIN_CHUNK_SIZE
		notes = append(notes, "Chunk size below minimum. Using "+strconv.Itoa(c.ChunkSize))
	}

	if c.Threads > constants.MAX_NUM_WORKERS {
		c.Threads = constants.MAX_NUM_WORKERS
		notes = append(notes, "Thread count above maximum. Using "+strconv.Itoa(c.Threads))
	} else if c.Threads < 1 {
		c.Threads = 1
		notes = append(notes, "Thread count below minimum. Using 1")
	}

	return notes
}

// Resolve parses the policy flags
func (c Config) Resolve() (Settings, error) {
	var s Settings
	var err error

	if s.Codec, err = codec.Lookup(c.Codec); err != nil {
		return s, err
	}
	if s.Order, err = worker.ParseOrder(c.Order); err != nil {
		return s, err
	}
	if s.Read, err = fileio.ParseReadStrategy(c.Read); err != nil {
		return s, err
	}
	if s.Collect, err = worker.ParseCollect(c.Collect); err != nil {
		return s, err
	}
	if s.Checksum, err = fileio.ParseChecksum(c.Checksum); err != nil {
		return s, err
	}
	return s, nil
}

// WorkerOptions combines the numeric values with resolved settings
func (c Config) WorkerOptions(s Settings) worker.Options {
	return worker.Options{
		Workers:   c.Threads,
		ChunkSize: c.ChunkSize,
		Codec:     s.Codec,
		Order:     s.Order,
		Collect:   s.Collect,
	}
}

func (c Config) String() string {
	return fmt.Sprintf("threads=%d chunksize=%d codec=%s order=%s read=%s collect=%s checksum=%s",
		c.Threads, c.ChunkSize, c.Codec, c.Order, c.Read, c.Collect, c.Checksum)
}
