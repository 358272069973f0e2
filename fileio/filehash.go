package fileio

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ChecksumMethod selects the digest computed over written output
type ChecksumMethod int

const (
	ChecksumNone ChecksumMethod = iota
	ChecksumCRC32
	ChecksumSHA256
	ChecksumXXHash
)

func (m ChecksumMethod) String() string {
	switch m {
	case ChecksumNone:
		return "none"
	case ChecksumCRC32:
		return "crc32"
	case ChecksumSHA256:
		return "sha256"
	case ChecksumXXHash:
		return "xxhash"
	default:
		return "unknown"
	}
}

// ParseChecksum maps a flag value to a ChecksumMethod
func ParseChecksum(s string) (ChecksumMethod, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return ChecksumNone, nil
	case "crc32":
		return ChecksumCRC32, nil
	case "sha256":
		return ChecksumSHA256, nil
	case "xxhash":
		return ChecksumXXHash, nil
	default:
		return ChecksumNone, fmt.Errorf("invalid checksum method: %s", s)
	}
}

// NewHash returns a progressive hash for method, or nil for ChecksumNone
func NewHash(method ChecksumMethod) hash.Hash {
	switch method {
	case ChecksumCRC32:
		return crc32.NewIEEE()
	case ChecksumSHA256:
		return sha256.New()
	case ChecksumXXHash:
		return xxhash.New()
	default:
		return nil
	}
}

// FileChecksum returns the checksum of the file's content
func FileChecksum(path string, method ChecksumMethod) ([]byte, error) {
	h := NewHash(method)
	if h == nil {
		return nil, nil
	}

	handle, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer handle.Close()

	if _, err := io.CopyBuffer(h, handle, make([]byte, 64*1024)); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return h.Sum(nil), nil
}
