package fileio

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go_fast_compress/worker"
)

// ReadStrategy decides how workers share the input file
type ReadStrategy int

const (
	ReadShared      ReadStrategy = iota // Duplicated descriptors racing on one cursor
	ReadPartitioned                     // One disjoint byte range per worker
)

func (s ReadStrategy) String() string {
	switch s {
	case ReadShared:
		return "shared"
	case ReadPartitioned:
		return "partitioned"
	default:
		return "unknown"
	}
}

// ParseReadStrategy maps a flag value to a ReadStrategy
func ParseReadStrategy(s string) (ReadStrategy, error) {
	switch strings.ToLower(s) {
	case "shared":
		return ReadShared, nil
	case "partitioned":
		return ReadPartitioned, nil
	default:
		return ReadShared, fmt.Errorf("invalid read strategy: %s", s)
	}
}

// NewSource returns the worker input source for an already opened file
func NewSource(file *os.File, strategy ReadStrategy) (worker.Source, error) {
	switch strategy {
	case ReadShared:
		return &SharedSource{file: file}, nil
	case ReadPartitioned:
		info, err := file.Stat()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", file.Name(), err)
		}
		return &PartitionedSource{path: file.Name(), size: info.Size()}, nil
	default:
		return nil, fmt.Errorf("unsupported read strategy %d", strategy)
	}
}

// SharedSource gives every worker a duplicate of the same descriptor.
// Duplicates share one file offset, so which bytes each worker sees is up to the OS.
type SharedSource struct {
	file *os.File
}

// Open duplicates the input descriptor. Closing the duplicate leaves the original open.
func (s *SharedSource) Open(index, workers int) (io.ReadCloser, error) {
	rc, err := duplicate(s.file)
	if err != nil {
		return nil, fmt.Errorf("duplicate %s: %w", s.file.Name(), err)
	}
	return rc, nil
}

// PartitionedSource opens an independent handle per worker over its own byte range
type PartitionedSource struct {
	path string
	size int64
}

type sectionReadCloser struct {
	*io.SectionReader
	file *os.File
}

func (s *sectionReadCloser) Close() error {
	return s.file.Close()
}

// Open returns a reader limited to the worker's share of the file
func (p *PartitionedSource) Open(index, workers int) (io.ReadCloser, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p.path, err)
	}
	offset, length := Partition(p.size, workers, index)
	return &sectionReadCloser{SectionReader: io.NewSectionReader(f, offset, length), file: f}, nil
}

// Partition splits size bytes into workers contiguous ranges; the last one takes the remainder
func Partition(size int64, workers, index int) (offset, length int64) {
	share := size / int64(workers)
	offset = share * int64(index)
	length = share
	if index == workers-1 {
		length = size - offset
	}
	return offset, length
}
