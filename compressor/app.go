package main

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/akamensky/argparse"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"go_fast_compress/codec"
	"go_fast_compress/config"
	"go_fast_compress/constants"
	"go_fast_compress/fileio"
	"go_fast_compress/logging"
	"go_fast_compress/metrics"
	"go_fast_compress/worker"
)

// exitCode applies the boundary policy: failures exit 0 unless strict
func exitCode(strict bool) int {
	if strict {
		return 1
	}
	return 0
}

var errUsage = errors.New("wrong arguments")

// parseArgs fills a Config from the command line. On errUsage only Strict is meaningful.
func parseArgs(args []string, stderr io.Writer) (config.Config, error) {
	cfg := config.Default()
	parser := argparse.NewParser(filepath.Base(args[0]), constants.Title)

	threads := parser.Int("t", "threads", &argparse.Options{Help: "Number of compression threads " +
		"(1-" + strconv.Itoa(constants.MAX_NUM_WORKERS) + ")", Default: cfg.Threads})
	chunk := parser.Int("c", "chunksize", &argparse.Options{Help: "Compressed block threshold in bytes " +
		"(" + strconv.Itoa(constants.MIN_CHUNK_SIZE) + "-" + strconv.Itoa(constants.MAX_CHUNK_SIZE) + ")",
		Default: cfg.ChunkSize})
	codecName := parser.Selector("z", "codec", codec.Names(), &argparse.Options{Help: "Compression codec",
		Default: cfg.Codec})
	order := parser.Selector("o", "order", []string{"length", "sequence"}, &argparse.Options{
		Help: "Block order in the output", Default: cfg.Order})
	read := parser.Selector("r", "read", []string{"shared", "partitioned"}, &argparse.Options{
		Help: "How workers read the input", Default: cfg.Read})
	collect := parser.Selector("a", "collect", []string{"bounded", "all"}, &argparse.Options{
		Help: "How many worker messages are collected", Default: cfg.Collect})
	checksum := parser.Selector("k", "checksum", []string{"none", "crc32", "sha256", "xxhash"}, &argparse.Options{
		Help: "Checksum of the written output", Default: cfg.Checksum})
	decompress := parser.Flag("d", "decompress", &argparse.Options{Help: "Decode a compressed file instead"})
	metricsPath := parser.String("m", "metrics", &argparse.Options{Help: "Write prometheus counters to this file"})
	strict := parser.Flag("S", "strict", &argparse.Options{Help: "Exit with status 1 on any failure"})
	verbose := parser.Flag("v", "verbose", &argparse.Options{Help: "Debug logging"})
	input := parser.StringPositional(&argparse.Options{Help: "Input file"})
	output := parser.StringPositional(&argparse.Options{Help: "Output file"})

	err := parser.Parse(args)
	if err != nil || *input == "" || *output == "" {
		if err != nil {
			fmt.Fprintln(stderr, err)
		}
		fmt.Fprintf(stderr, "Usage: %s <input_file> <output_file>\n", args[0])
		cfg.Strict = *strict
		return cfg, errUsage
	}

	cfg.Input = filepath.Clean(*input)
	cfg.Output = filepath.Clean(*output)
	cfg.Threads = *threads
	cfg.ChunkSize = *chunk
	cfg.Codec = *codecName
	cfg.Order = *order
	cfg.Read = *read
	cfg.Collect = *collect
	cfg.Checksum = *checksum
	cfg.Decompress = *decompress
	cfg.MetricsPath = *metricsPath
	cfg.Strict = *strict
	cfg.Verbose = *verbose
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args, stderr)
	if err != nil {
		return exitCode(cfg.Strict)
	}

	logger := logging.New(stderr, cfg.Verbose)
	defer logger.Sync()

	for _, note := range cfg.Validate() {
		fmt.Fprintln(stdout, note)
	}

	settings, err := cfg.Resolve()
	if err != nil {
		logger.Error("Invalid configuration", zap.Error(err))
		return exitCode(cfg.Strict)
	}
	logger.Debug("Configuration", zap.Stringer("config", cfg))

	in, err := os.Open(cfg.Input)
	if err != nil {
		logger.Error("Failed to open input file", zap.String("path", cfg.Input), zap.Error(err))
		return exitCode(cfg.Strict)
	}
	defer in.Close()

	out, err := os.Create(cfg.Output)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("path", cfg.Output), zap.Error(err))
		return exitCode(cfg.Strict)
	}
	defer out.Close()

	if cfg.Decompress {
		err = decompress(settings, in, out, stdout)
	} else {
		err = compress(cfg, settings, in, out, stdout, logger)
	}
	if err != nil {
		logger.Error("Run failed", zap.Error(err))
		return exitCode(cfg.Strict)
	}

	if err := out.Close(); err != nil {
		logger.Error("Failed to close output file", zap.String("path", cfg.Output), zap.Error(err))
		return exitCode(cfg.Strict)
	}
	return 0
}

func decompress(settings config.Settings, in io.Reader, out io.Writer, stdout io.Writer) error {
	begin := time.Now()

	w := bufio.NewWriterSize(out, constants.WRITE_BUFFER_SIZE)
	n, err := settings.Codec.Decode(w, in)
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	fmt.Fprintln(stdout, "Decompressed", humanize.Bytes(uint64(n)), "in", time.Since(begin))
	return nil
}

func compress(cfg config.Config, settings config.Settings, in *os.File, out io.Writer, stdout io.Writer, logger *zap.Logger) error {
	stats := metrics.NewRecorder(settings.Codec.Name())
	if cfg.MetricsPath != "" {
		defer func() {
			if err := stats.WriteTextfile(cfg.MetricsPath); err != nil {
				logger.Error("Failed to write metrics", zap.String("path", cfg.MetricsPath), zap.Error(err))
			}
		}()
	}

	src, err := fileio.NewSource(in, settings.Read)
	if err != nil {
		return err
	}

	collector, err := worker.NewCollector(cfg.WorkerOptions(settings), stats, logger)
	if err != nil {
		return err
	}

	begin := time.Now()
	chunks, err := collector.Compress(src)
	if err != nil {
		return err
	}

	writer := fileio.NewChunkWriter(out, constants.WRITE_BUFFER_SIZE, settings.Checksum)
	if err := writer.Write(chunks); err != nil {
		return err
	}

	snap := stats.Snapshot()
	fmt.Fprintln(stdout, "Compressed", humanize.Bytes(snap.RawBytes), "into",
		humanize.Bytes(uint64(writer.Written())), "in", time.Since(begin),
		"with", len(chunks), "/", snap.Chunks, "chunks written")
	if sum := writer.Checksum(); sum != nil {
		fmt.Fprintln(stdout, "Checksum", settings.Checksum, hex.EncodeToString(sum))
	}
	return nil
}
