// Package codec adapts streaming compressors to the push/inspect/finalize shape the
// chunk workers need, and decodes files made of back-to-back compressed streams.
package codec

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Encoder accepts arbitrary-length pushes into a growing compressed buffer.
// Finish closes the stream and returns the whole block; the encoder is unusable afterwards.
type Encoder interface {
	io.Writer
	Len() int
	Finish() ([]byte, error)
}

// Codec produces independent encoders and decodes concatenated streams
type Codec interface {
	Name() string
	NewEncoder() (Encoder, error)
	Decode(dst io.Writer, src io.Reader) (int64, error)
}

type streamCodec struct {
	name      string
	newWriter func(io.Writer) (io.WriteCloser, error)
	newReader func(io.Reader) (io.ReadCloser, error)
}

func (c *streamCodec) Name() string {
	return c.name
}

// NewEncoder returns a fresh encoder with its own buffer
func (c *streamCodec) NewEncoder() (Encoder, error) {
	return newStreamEncoder(c.newWriter)
}

// Decode writes the decompressed content of every stream found in src to dst
func (c *streamCodec) Decode(dst io.Writer, src io.Reader) (int64, error) {
	return decodeStreams(dst, src, c.newReader)
}

var registry = map[string]Codec{}

func register(c Codec) {
	registry[c.Name()] = c
}

// Lookup returns the codec registered under name
func Lookup(name string) (Codec, error) {
	c, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown codec %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return c, nil
}

// Names lists registered codecs in alphabetical order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
