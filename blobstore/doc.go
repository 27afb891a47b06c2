// Package blobstore abstracts storage of immutable data blobs (array files,
// chunks, manifests) over local disk, memory and object storage.
//
// A BlobStore maps string names to byte blobs. Writes are whole-blob and
// atomic: a Put either fully replaces the named blob or leaves it untouched.
// Reads go through Blob handles; the local implementation backs them with
// memory-mapped files so repeated chunk reads stay zero-copy.
//
// Implementations for MinIO and Amazon S3 live in the minio and s3
// subpackages.
package blobstore
