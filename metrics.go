package ndgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    saveCounter   prometheus.Counter
//	    loadHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordSave(bytes int, duration time.Duration, err error) {
//	    p.saveCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordSave is called after each array save operation.
	// bytes is the encoded size, duration the total time taken, err is nil
	// if successful.
	RecordSave(bytes int, duration time.Duration, err error)

	// RecordLoad is called after each array load operation.
	RecordLoad(bytes int, duration time.Duration, err error)

	// RecordChunkWrite is called after each chunk upload.
	RecordChunkWrite(bytes int, duration time.Duration, err error)

	// RecordChunkRead is called after each chunk download.
	RecordChunkRead(bytes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSave(int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordChunkWrite(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordChunkRead(int, time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SaveCount       atomic.Int64
	SaveErrors      atomic.Int64
	SaveBytes       atomic.Int64
	SaveTotalNanos  atomic.Int64
	LoadCount       atomic.Int64
	LoadErrors      atomic.Int64
	LoadBytes       atomic.Int64
	LoadTotalNanos  atomic.Int64
	ChunkWriteCount atomic.Int64
	ChunkWriteBytes atomic.Int64
	ChunkWriteFails atomic.Int64
	ChunkReadCount  atomic.Int64
	ChunkReadBytes  atomic.Int64
	ChunkReadFails  atomic.Int64
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(bytes int, duration time.Duration, err error) {
	b.SaveCount.Add(1)
	b.SaveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SaveErrors.Add(1)
		return
	}
	b.SaveBytes.Add(int64(bytes))
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(bytes int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadBytes.Add(int64(bytes))
}

// RecordChunkWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChunkWrite(bytes int, _ time.Duration, err error) {
	b.ChunkWriteCount.Add(1)
	if err != nil {
		b.ChunkWriteFails.Add(1)
		return
	}
	b.ChunkWriteBytes.Add(int64(bytes))
}

// RecordChunkRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChunkRead(bytes int, _ time.Duration, err error) {
	b.ChunkReadCount.Add(1)
	if err != nil {
		b.ChunkReadFails.Add(1)
		return
	}
	b.ChunkReadBytes.Add(int64(bytes))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SaveCount:       b.SaveCount.Load(),
		SaveErrors:      b.SaveErrors.Load(),
		SaveBytes:       b.SaveBytes.Load(),
		SaveAvgNanos:    avgNanos(b.SaveTotalNanos.Load(), b.SaveCount.Load()),
		LoadCount:       b.LoadCount.Load(),
		LoadErrors:      b.LoadErrors.Load(),
		LoadBytes:       b.LoadBytes.Load(),
		LoadAvgNanos:    avgNanos(b.LoadTotalNanos.Load(), b.LoadCount.Load()),
		ChunkWriteCount: b.ChunkWriteCount.Load(),
		ChunkWriteBytes: b.ChunkWriteBytes.Load(),
		ChunkWriteFails: b.ChunkWriteFails.Load(),
		ChunkReadCount:  b.ChunkReadCount.Load(),
		ChunkReadBytes:  b.ChunkReadBytes.Load(),
		ChunkReadFails:  b.ChunkReadFails.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SaveCount       int64
	SaveErrors      int64
	SaveBytes       int64
	SaveAvgNanos    int64
	LoadCount       int64
	LoadErrors      int64
	LoadBytes       int64
	LoadAvgNanos    int64
	ChunkWriteCount int64
	ChunkWriteBytes int64
	ChunkWriteFails int64
	ChunkReadCount  int64
	ChunkReadBytes  int64
	ChunkReadFails  int64
}
