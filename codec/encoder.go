package codec

import (
	"bytes"
	"errors"
	"io"
)

// ErrFinished is returned when an encoder is used after Finish
var ErrFinished = errors.New("encoder already finished")

// streamEncoder buffers a compressor's output in memory so its length can be inspected
type streamEncoder struct {
	buf      *bytes.Buffer
	w        io.WriteCloser
	finished bool
}

func newStreamEncoder(newWriter func(io.Writer) (io.WriteCloser, error)) (*streamEncoder, error) {
	buf := new(bytes.Buffer)
	w, err := newWriter(buf)
	if err != nil {
		return nil, err
	}
	return &streamEncoder{buf: buf, w: w}, nil
}

func (e *streamEncoder) Write(p []byte) (int, error) {
	if e.finished {
		return 0, ErrFinished
	}
	return e.w.Write(p)
}

// Len returns the compressed bytes emitted so far, excluding what the compressor still holds
func (e *streamEncoder) Len() int {
	return e.buf.Len()
}

func (e *streamEncoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, ErrFinished
	}
	e.finished = true
	if err := e.w.Close(); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}
