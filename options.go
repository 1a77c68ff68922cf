package gpures

import (
	"log/slog"

	"github.com/gogpu/gpures/caps"
)

// Option configures a ResourceProvider during creation.
//
// Example:
//
//	p, err := gpures.NewResourceProvider(device, c,
//	    gpures.WithPipelineFactory(factory),
//	    gpures.WithLabel("ui"),
//	)
type Option func(*providerOptions)

// providerOptions holds optional configuration for ResourceProvider creation.
type providerOptions struct {
	factory     PipelineFactory
	logger      *slog.Logger
	label       string
	capsOptions []caps.Option
}

// defaultOptions returns the default provider options.
func defaultOptions() providerOptions {
	return providerOptions{
		logger: Logger(),
		label:  "gpures",
	}
}

// WithPipelineFactory sets the collaborator that compiles graphics
// pipelines. Without one, pipeline requests fail with ErrNoPipelineFactory.
func WithPipelineFactory(f PipelineFactory) Option {
	return func(o *providerOptions) {
		o.factory = f
	}
}

// WithLogger overrides the package logger for one provider.
// A nil logger keeps the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *providerOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLabel sets the prefix of the debug labels given to created objects.
func WithLabel(label string) Option {
	return func(o *providerOptions) {
		o.label = label
	}
}

// WithCapsOptions passes options to the capability table built by
// NewResourceProviderFromContext. Providers built from an existing Caps
// ignore them.
func WithCapsOptions(opts ...caps.Option) Option {
	return func(o *providerOptions) {
		o.capsOptions = append(o.capsOptions, opts...)
	}
}
