// Package s3 provides a BlobStore implementation backed by Amazon S3, plus a
// DynamoDB-backed commit store for atomically publishing chunk manifests.
//
// S3 has no compare-and-swap primitive, so concurrent writers publishing a
// new manifest version could silently overwrite each other. The CommitStore
// in this package keeps the current-manifest pointer in a DynamoDB table and
// advances it with a conditional write, turning manifest publication into an
// atomic operation.
package s3
