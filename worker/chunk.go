package worker

import "io"

// Chunk is one independently finalized compressed block.
// Data is nil when the worker produced nothing.
type Chunk struct {
	Worker int    // Index of the producing worker
	Seq    int    // Position among the producing worker's chunks (starts from 0)
	Data   []byte // Finalized compressed stream
}

// MessageKind tags a Message
type MessageKind uint8

const (
	MessageData  MessageKind = iota // Carries a finished chunk
	MessageError                    // Worker stopped on a failure
	MessageDone                     // Worker consumed all its input
)

// Message travels from a worker to the collector
type Message struct {
	Kind   MessageKind
	Worker int
	Chunk  Chunk
	Err    error
}

// Source hands each worker its own reader over the input
type Source interface {
	Open(worker, workers int) (io.ReadCloser, error)
}
