package chunkstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/ndgo"
	"github.com/hupe1980/ndgo/blobstore"
	"github.com/hupe1980/ndgo/persist"
)

// ErrNotFound is returned when no version of an array has been published.
var ErrNotFound = blobstore.ErrNotFound

// CommitStore tracks the current manifest version per array name.
// Publish must fail when another writer has already published the same or
// a newer version for that name.
type CommitStore interface {
	// Publish records manifestKey as the given version of name.
	Publish(ctx context.Context, name, manifestKey string, version uint64) error

	// Current returns the latest published manifest key and version.
	// When nothing has been published it returns version 0 and no error.
	Current(ctx context.Context, name string) (manifestKey string, version uint64, err error)
}

// Store persists arrays of element type T as chunk grids on a blob store.
//
// A Store is safe for concurrent use as long as distinct array names are
// written concurrently; concurrent writers of the same name race unless a
// CommitStore is configured.
type Store[T ndgo.Scalar] struct {
	blobs blobstore.BlobStore
	opts  options
}

// New creates a chunk store on top of blobs.
func New[T ndgo.Scalar](blobs blobstore.BlobStore, optFns ...Option) *Store[T] {
	return &Store[T]{
		blobs: blobs,
		opts:  applyOptions(optFns),
	}
}

// Write splits a into chunks, uploads every non-zero chunk, and publishes
// a new manifest version for name. It returns the published manifest.
func (s *Store[T]) Write(ctx context.Context, name string, a *ndgo.Array[T]) (*Manifest, error) {
	if a == nil {
		return nil, ndgo.ErrNilArray
	}

	shape := a.Shape()

	chunkShape, err := s.resolveChunkShape(shape)
	if err != nil {
		return nil, err
	}

	version, err := s.nextVersion(ctx, name)
	if err != nil {
		return nil, err
	}

	m := &Manifest{
		FormatVersion: ManifestFormatVersion,
		Version:       version,
		DType:         ndgo.DTypeOf[T]().String(),
		Shape:         shape,
		ChunkShape:    chunkShape,
		Compression:   s.opts.compression.String(),
	}

	written := roaring.New()

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.workers)

	for idx := range m.NumChunks() {
		g.Go(func() error {
			coords := m.ChunkCoords(idx)

			ok, err := s.writeChunk(gctx, name, m, coords, a)
			if err != nil {
				return err
			}

			if !ok {
				return nil
			}

			bit, err := chunkBit(idx)
			if err != nil {
				return err
			}

			mu.Lock()
			written.Add(bit)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if m.Written, err = written.MarshalBinary(); err != nil {
		return nil, fmt.Errorf("failed to encode written-chunk bitmap: %w", err)
	}

	if err := s.publish(ctx, name, m); err != nil {
		return nil, err
	}

	return m, nil
}

// Read loads the current version of name into a freshly allocated array.
// Chunks missing from the manifest are filled with zeros.
func (s *Store[T]) Read(ctx context.Context, name string) (*ndgo.Array[T], error) {
	m, err := s.Current(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := s.checkDType(m); err != nil {
		return nil, err
	}

	out, err := ndgo.Zeros[T](ndgo.Shape(m.Shape))
	if err != nil {
		return nil, err
	}

	written, err := m.WrittenSet()
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.workers)

	it := written.Iterator()
	for it.HasNext() {
		idx := int(it.Next())

		g.Go(func() error {
			coords := m.ChunkCoords(idx)

			chunk, err := s.fetchChunk(gctx, name, m, coords)
			if err != nil {
				return err
			}

			region, err := chunkRegion(out, m, coords)
			if err != nil {
				return err
			}

			// Regions of distinct chunks never overlap, so concurrent
			// copies into the shared backing slice are safe.
			return region.CopyFrom(chunk)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// ReadChunk loads a single chunk of the current version of name.
// Chunks that were never written are returned as zero-filled arrays of
// the chunk's extent.
func (s *Store[T]) ReadChunk(ctx context.Context, name string, coords ...int) (*ndgo.Array[T], error) {
	m, err := s.Current(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := s.checkDType(m); err != nil {
		return nil, err
	}

	idx, err := m.ChunkIndex(coords)
	if err != nil {
		return nil, err
	}

	written, err := m.WrittenSet()
	if err != nil {
		return nil, err
	}

	bit, err := chunkBit(idx)
	if err != nil {
		return nil, err
	}

	if !written.Contains(bit) {
		_, sizes := m.ChunkExtent(coords)
		return ndgo.Zeros[T](ndgo.Shape(sizes))
	}

	return s.fetchChunk(ctx, name, m, coords)
}

// Current returns the manifest of the latest published version of name.
func (s *Store[T]) Current(ctx context.Context, name string) (*Manifest, error) {
	var mkey string

	if s.opts.commit != nil {
		key, version, err := s.opts.commit.Current(ctx, name)
		if err != nil {
			return nil, err
		}

		if version == 0 {
			return nil, fmt.Errorf("array %q: %w", name, ErrNotFound)
		}

		mkey = key
	} else {
		data, err := blobstore.ReadAll(ctx, s.blobs, currentKey(name))
		if err != nil {
			if errors.Is(err, blobstore.ErrNotFound) {
				return nil, fmt.Errorf("array %q: %w", name, ErrNotFound)
			}

			return nil, err
		}

		mkey = string(data)
	}

	return s.loadManifest(ctx, mkey)
}

// Manifest loads a specific manifest version of name, whether or not it
// is the current one.
func (s *Store[T]) Manifest(ctx context.Context, name string, version uint64) (*Manifest, error) {
	return s.loadManifest(ctx, manifestKey(name, version))
}

// Delete removes all blobs of name, including every manifest version.
// Entries in an external CommitStore are left in place.
func (s *Store[T]) Delete(ctx context.Context, name string) error {
	keys, err := s.blobs.List(ctx, name+"/")
	if err != nil {
		return fmt.Errorf("failed to list blobs of %q: %w", name, err)
	}

	for _, key := range keys {
		if err := s.blobs.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to delete blob %q: %w", key, err)
		}
	}

	return nil
}

func (s *Store[T]) resolveChunkShape(shape ndgo.Shape) ([]int, error) {
	if s.opts.chunkShape == nil {
		return shape.Clone(), nil
	}

	if len(s.opts.chunkShape) != len(shape) {
		return nil, fmt.Errorf("chunk shape %v does not match array rank %d", s.opts.chunkShape, len(shape))
	}

	cs := s.opts.chunkShape.Clone()
	for axis, c := range cs {
		if c < 1 {
			return nil, fmt.Errorf("chunk shape %v has non-positive extent on axis %d", cs, axis)
		}

		cs[axis] = min(c, shape[axis])
	}

	return cs, nil
}

func (s *Store[T]) nextVersion(ctx context.Context, name string) (uint64, error) {
	m, err := s.Current(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 1, nil
		}

		return 0, err
	}

	return m.Version + 1, nil
}

// writeChunk uploads the chunk at coords. It reports false when the chunk
// holds only zeros and was skipped.
func (s *Store[T]) writeChunk(ctx context.Context, name string, m *Manifest, coords []int, a *ndgo.Array[T]) (bool, error) {
	chunk, err := chunkRegion(a, m, coords)
	if err != nil {
		return false, err
	}

	if allZero(chunk) {
		return false, nil
	}

	payload, err := persist.EncodeBytes(chunk, s.opts.compression)
	if err != nil {
		return false, err
	}

	if s.opts.limiter != nil {
		if err := s.opts.limiter.Wait(ctx); err != nil {
			return false, err
		}
	}

	key := chunkKey(name, coords)
	raw := chunk.Size() * ndgo.DTypeOf[T]().ItemSize()

	start := time.Now()
	err = s.blobs.Put(ctx, key, payload)

	s.opts.metrics.RecordChunkWrite(len(payload), time.Since(start), err)
	s.opts.logger.LogChunkWrite(ctx, key, raw, len(payload), err)

	if err != nil {
		return false, fmt.Errorf("failed to write chunk %q: %w", key, err)
	}

	return true, nil
}

func (s *Store[T]) fetchChunk(ctx context.Context, name string, m *Manifest, coords []int) (*ndgo.Array[T], error) {
	if s.opts.limiter != nil {
		if err := s.opts.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	key := chunkKey(name, coords)

	start := time.Now()
	data, err := blobstore.ReadAll(ctx, s.blobs, key)

	s.opts.metrics.RecordChunkRead(len(data), time.Since(start), err)
	s.opts.logger.LogChunkRead(ctx, key, len(data), err)

	if err != nil {
		return nil, fmt.Errorf("failed to read chunk %q: %w", key, err)
	}

	chunk, err := persist.DecodeBytes[T](data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode chunk %q: %w", key, err)
	}

	_, sizes := m.ChunkExtent(coords)
	if !chunk.Shape().Equal(ndgo.Shape(sizes)) {
		return nil, fmt.Errorf("chunk %q has shape %v, expected %v", key, chunk.Shape(), sizes)
	}

	return chunk, nil
}

func (s *Store[T]) publish(ctx context.Context, name string, m *Manifest) error {
	data, err := s.opts.codec.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	mkey := manifestKey(name, m.Version)
	if err := s.blobs.Put(ctx, mkey, data); err != nil {
		return fmt.Errorf("failed to write manifest %q: %w", mkey, err)
	}

	if s.opts.commit != nil {
		err = s.opts.commit.Publish(ctx, name, mkey, m.Version)
	} else {
		err = s.blobs.Put(ctx, currentKey(name), []byte(mkey))
	}

	s.opts.logger.LogCommit(ctx, name, m.Version, err)

	if err != nil {
		return fmt.Errorf("failed to publish version %d of %q: %w", m.Version, name, err)
	}

	return nil
}

func (s *Store[T]) loadManifest(ctx context.Context, mkey string) (*Manifest, error) {
	data, err := blobstore.ReadAll(ctx, s.blobs, mkey)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", mkey, err)
	}

	var m Manifest
	if err := s.opts.codec.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest %q: %w", mkey, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %q: %w", mkey, err)
	}

	return &m, nil
}

func (s *Store[T]) checkDType(m *Manifest) error {
	want := ndgo.DTypeOf[T]()

	got, ok := ndgo.DTypeByName(m.DType)
	if !ok || got != want {
		return &ndgo.DTypeError{Want: want, Got: got}
	}

	return nil
}

// chunkRegion returns the view of a covering the chunk at coords.
func chunkRegion[T ndgo.Scalar](a *ndgo.Array[T], m *Manifest, coords []int) (*ndgo.Array[T], error) {
	starts, sizes := m.ChunkExtent(coords)

	region := a

	for axis := range coords {
		var err error

		region, err = region.Slice(axis, ndgo.Range{
			Start: starts[axis],
			Stop:  starts[axis] + sizes[axis],
			Step:  1,
		})
		if err != nil {
			return nil, err
		}
	}

	return region, nil
}

func allZero[T ndgo.Scalar](a *ndgo.Array[T]) bool {
	for _, v := range a.Values() {
		if v != 0 {
			return false
		}
	}

	return true
}
