package bluetooth

// DefaultWriteChunkSize is a conservative payload size accepted by common
// BLE print services without MTU negotiation.
const DefaultWriteChunkSize = 180

type Options struct {
	writeChunkSize int
}

type Option func(*Options)

// WithWriteChunkSize caps the number of bytes written to the print
// characteristic per operation.
func WithWriteChunkSize(n int) Option {
	return func(opts *Options) {
		if n > 0 {
			opts.writeChunkSize = n
		}
	}
}
