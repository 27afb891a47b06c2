// Package testutil provides deterministic random data generation for tests
// and benchmarks.
package testutil
