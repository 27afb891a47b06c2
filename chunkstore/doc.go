// Package chunkstore persists large arrays as a grid of independently
// encoded chunks on a blob store.
//
// An array is split along every axis into chunks of a configurable shape.
// Each non-zero chunk is encoded with the persist binary format and written
// as its own blob, so writes and reads can run concurrently and readers can
// fetch a single chunk without touching the rest of the array. Chunks whose
// elements are all zero are never written; a roaring bitmap in the manifest
// records which chunks exist, and missing chunks read back as zeros.
//
// Every write publishes a new immutable manifest version. The current
// version is tracked either by a CURRENT pointer blob or, when a
// CommitStore is configured, by a conditional-write commit log that
// detects concurrent publishers.
package chunkstore
