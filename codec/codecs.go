package codec

import (
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Every codec runs at its best-ratio setting.
var (
	Deflate Codec = &streamCodec{
		name: "deflate",
		newWriter: func(w io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(w, flate.BestCompression)
		},
		newReader: func(r io.Reader) (io.ReadCloser, error) {
			return flate.NewReader(r), nil
		},
	}

	Gzip Codec = &streamCodec{
		name: "gzip",
		newWriter: func(w io.Writer) (io.WriteCloser, error) {
			return gzip.NewWriterLevel(w, gzip.BestCompression)
		},
		newReader: func(r io.Reader) (io.ReadCloser, error) {
			return gzip.NewReader(r)
		},
	}

	Zstd Codec = &streamCodec{
		name: "zstd",
		newWriter: func(w io.Writer) (io.WriteCloser, error) {
			// One encoder per chunk, so no background goroutines.
			return zstd.NewWriter(w,
				zstd.WithEncoderLevel(zstd.SpeedBestCompression),
				zstd.WithEncoderConcurrency(1),
				zstd.WithZeroFrames(true))
		},
		newReader: func(r io.Reader) (io.ReadCloser, error) {
			d, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
			if err != nil {
				return nil, err
			}
			return d.IOReadCloser(), nil
		},
	}

	LZ4 Codec = &streamCodec{
		name: "lz4",
		newWriter: func(w io.Writer) (io.WriteCloser, error) {
			zw := lz4.NewWriter(w)
			if err := zw.Apply(lz4.CompressionLevelOption(lz4.Level9)); err != nil {
				return nil, err
			}
			return zw, nil
		},
		newReader: func(r io.Reader) (io.ReadCloser, error) {
			return io.NopCloser(lz4.NewReader(r)), nil
		},
	}
)

func init() {
	register(Deflate)
	register(Gzip)
	register(Zstd)
	register(LZ4)
}
