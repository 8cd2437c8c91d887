package rfcomm

const (
	// DefaultChannel is the SPP channel most thermal printers listen on.
	DefaultChannel = 1

	DefaultBaudRate = 115200
)

type Options struct {
	channel  int
	baudRate int
}

type Option func(*Options)

// WithChannel selects the RFCOMM channel used when binding the link.
func WithChannel(channel int) Option {
	return func(opts *Options) {
		opts.channel = channel
	}
}

// WithBaudRate sets the serial rate used on the device node.
func WithBaudRate(rate int) Option {
	return func(opts *Options) {
		opts.baudRate = rate
	}
}
