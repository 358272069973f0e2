//go:build !unix

package fileio

import (
	"io"
	"os"
)

// sharedHandle lends out the original file; closing it is left to the owner
type sharedHandle struct {
	*os.File
}

func (sharedHandle) Close() error {
	return nil
}

// duplicate falls back to sharing f itself, which keeps the single shared offset
func duplicate(f *os.File) (io.ReadCloser, error) {
	return sharedHandle{f}, nil
}
