//go:build unix

package fileio

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// duplicate returns a new descriptor sharing f's open file description and offset
func duplicate(f *os.File) (io.ReadCloser, error) {
	fd, err := unix.Dup(int(f.Fd()))
	if err != nil {
		return nil, err
	}
	unix.CloseOnExec(fd)
	return os.NewFile(uintptr(fd), f.Name()), nil
}
