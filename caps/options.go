package caps

import "log/slog"

const (
	// DefaultMaxSampleCount is the multisample ceiling of WebGPU core.
	DefaultMaxSampleCount = 4

	// MaxSupportedSampleCount is the highest sample count resource keys
	// can encode.
	MaxSupportedSampleCount = 8
)

// Option configures a Caps during New.
type Option func(*options)

type options struct {
	maxSampleCount uint32
	logger         *slog.Logger
}

func defaultOptions() options {
	return options{
		maxSampleCount: DefaultMaxSampleCount,
		logger:         slog.New(slog.DiscardHandler),
	}
}

// WithMaxSampleCount sets the multisample ceiling reported for MSAA-capable
// formats. Values below 2 disable multisampling. The ceiling is rounded down
// to a power of two no greater than MaxSupportedSampleCount.
func WithMaxSampleCount(n uint32) Option {
	return func(o *options) {
		o.maxSampleCount = n
	}
}

// WithLogger sets the logger used while the table is built.
// A nil logger keeps the silent default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
