// Package metrics counts what the workers read and produce.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Stats is a point-in-time copy of the counters
type Stats struct {
	RawBytes        uint64
	Chunks          uint32
	CompressedBytes uint64
	Errors          uint32
}

// Recorder tracks pipeline counters. A nil Recorder ignores every call.
type Recorder struct {
	registry *prometheus.Registry

	rawBytes        prometheus.Counter
	chunks          prometheus.Counter
	compressedBytes prometheus.Counter
	errors          prometheus.Counter

	rawTotal        atomic.Uint64
	chunkTotal      atomic.Uint32
	compressedTotal atomic.Uint64
	errorTotal      atomic.Uint32
}

// NewRecorder creates counters labelled with the codec in use
func NewRecorder(codec string) *Recorder {
	labels := prometheus.Labels{"codec": codec}
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		rawBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "compressor_raw_bytes_read_total",
			Help:        "Bytes read from the input by all workers",
			ConstLabels: labels,
		}),
		chunks: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "compressor_chunks_total",
			Help:        "Compressed blocks finalized by workers",
			ConstLabels: labels,
		}),
		compressedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "compressor_compressed_bytes_total",
			Help:        "Bytes in finalized compressed blocks",
			ConstLabels: labels,
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "compressor_worker_errors_total",
			Help:        "Workers that stopped on a read or compression failure",
			ConstLabels: labels,
		}),
	}
	r.registry.MustRegister(r.rawBytes, r.chunks, r.compressedBytes, r.errors)
	return r
}

// AddRead records n raw bytes read
func (r *Recorder) AddRead(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.rawTotal.Add(uint64(n))
	r.rawBytes.Add(float64(n))
}

// AddChunk records one finalized block of size bytes
func (r *Recorder) AddChunk(size int) {
	if r == nil {
		return
	}
	r.chunkTotal.Add(1)
	r.compressedTotal.Add(uint64(size))
	r.chunks.Inc()
	r.compressedBytes.Add(float64(size))
}

// AddError records a failed worker
func (r *Recorder) AddError() {
	if r == nil {
		return
	}
	r.errorTotal.Add(1)
	r.errors.Inc()
}

// Snapshot returns the current counter values
func (r *Recorder) Snapshot() Stats {
	if r == nil {
		return Stats{}
	}
	return Stats{
		RawBytes:        r.rawTotal.Load(),
		Chunks:          r.chunkTotal.Load(),
		CompressedBytes: r.compressedTotal.Load(),
		Errors:          r.errorTotal.Load(),
	}
}

// Registry exposes the underlying prometheus registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the counters in prometheus text format, for the node exporter textfile collector
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
