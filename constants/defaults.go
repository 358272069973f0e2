package constants

const (
	Title = "Concurrent chunked file compressor"

	DEFAULT_CHUNK_SIZE  = 1024    // Compressed bytes buffered before a block is finalized
	MIN_CHUNK_SIZE      = 64      // Smaller thresholds produce mostly stream framing
	MAX_CHUNK_SIZE      = 8 << 20 // 8MB read buffer per worker at most
	DEFAULT_NUM_WORKERS = 4       // Compression worker goroutines
	MAX_NUM_WORKERS     = 256     // Each worker holds its own descriptor
	WRITE_BUFFER_SIZE   = 64 << 10
	DEFAULT_CODEC       = "deflate"
	DEFAULT_ORDER       = "length"
	DEFAULT_READ        = "shared"
	DEFAULT_COLLECT     = "bounded"
	DEFAULT_CHECKSUM    = "none"
)
