package persist

import "github.com/hupe1980/ndgo"

type options struct {
	compression Compression
	logger      *ndgo.Logger
	metrics     ndgo.MetricsCollector
}

// Option configures Save/Load/Map behavior.
type Option func(*options)

// WithCompression configures the data section compression used by Save.
// Load and Map read the compression from the file header and ignore this
// option.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *ndgo.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = ndgo.NoopLogger()
		}
		o.logger = logger
	}
}

// WithMetrics configures a metrics collector for monitoring operations.
func WithMetrics(mc ndgo.MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = ndgo.NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		compression: CompressionNone,
		logger:      ndgo.NoopLogger(),
		metrics:     ndgo.NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
