package chunkstore

import (
	"golang.org/x/time/rate"

	"github.com/hupe1980/ndgo"
	"github.com/hupe1980/ndgo/codec"
	"github.com/hupe1980/ndgo/persist"
)

const defaultWorkers = 4

type options struct {
	chunkShape  ndgo.Shape
	codec       codec.Codec
	compression persist.Compression
	workers     int
	limiter     *rate.Limiter
	commit      CommitStore
	logger      *ndgo.Logger
	metrics     ndgo.MetricsCollector
}

// Option configures a Store.
type Option func(*options)

// WithChunkShape sets the chunk shape used by Write. Axes where the chunk
// extent exceeds the array extent are clamped. When unset, the whole array
// is written as a single chunk.
func WithChunkShape(shape ndgo.Shape) Option {
	return func(o *options) {
		o.chunkShape = shape.Clone()
	}
}

// WithCodec sets the codec used to encode manifests. Defaults to codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithCompression sets the compression applied to each chunk.
// Defaults to zstd.
func WithCompression(c persist.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithWorkers sets the number of concurrent chunk uploads and downloads.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithRateLimit throttles blob operations to the given rate.
// Useful against shared object stores with request quotas.
func WithRateLimit(opsPerSecond float64, burst int) Option {
	return func(o *options) {
		o.limiter = rate.NewLimiter(rate.Limit(opsPerSecond), burst)
	}
}

// WithCommitStore publishes versions through an external commit log
// instead of the CURRENT pointer blob.
func WithCommitStore(cs CommitStore) Option {
	return func(o *options) {
		o.commit = cs
	}
}

// WithLogger sets the logger. Defaults to a noop logger.
func WithLogger(logger *ndgo.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector. Defaults to a noop collector.
func WithMetrics(mc ndgo.MetricsCollector) Option {
	return func(o *options) {
		if mc != nil {
			o.metrics = mc
		}
	}
}

func applyOptions(optFns []Option) options {
	opts := options{
		codec:       codec.Default,
		compression: persist.CompressionZstd,
		workers:     defaultWorkers,
		logger:      ndgo.NoopLogger(),
		metrics:     ndgo.NoopMetricsCollector{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return opts
}
