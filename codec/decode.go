package codec

import (
	"bufio"
	"io"

	"go_fast_compress/compresserr"
)

// trackedReader remembers the last non-EOF error of the underlying source
type trackedReader struct {
	r   io.Reader
	err error
}

func (t *trackedReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF {
		t.err = err
	}
	return n, err
}

type trackedWriter struct {
	w   io.Writer
	err error
}

func (t *trackedWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil {
		t.err = err
	}
	return n, err
}

// decodeStreams decodes back-to-back streams until src is exhausted.
// The bufio.Reader satisfies io.ByteReader so decoders stop exactly at their stream end.
func decodeStreams(dst io.Writer, src io.Reader, newReader func(io.Reader) (io.ReadCloser, error)) (int64, error) {
	tr := &trackedReader{r: src}
	tw := &trackedWriter{w: dst}
	br := bufio.NewReader(tr)

	var total int64
	for {
		if _, err := br.Peek(1); err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, compresserr.IOError(err)
		}

		zr, err := newReader(br)
		if err != nil {
			return total, classify(err, tr, tw)
		}
		n, err := io.Copy(tw, zr)
		total += n
		zr.Close()
		if err != nil {
			return total, classify(err, tr, tw)
		}
	}
}

// classify separates storage failures from corrupt compressed data
func classify(err error, tr *trackedReader, tw *trackedWriter) error {
	switch {
	case tw.err != nil:
		return compresserr.IOError(tw.err)
	case tr.err != nil:
		return compresserr.IOError(tr.err)
	default:
		return compresserr.InvalidData(err)
	}
}
