package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hupe1980/ndgo"
	"github.com/hupe1980/ndgo/blobstore"
	"github.com/hupe1980/ndgo/chunkstore"
	"github.com/hupe1980/ndgo/persist"
)

func main() {
	ctx := context.Background()

	rows := 1000
	cols := 1000

	data := make([]float32, rows*cols)
	for i := range data {
		data[i] = float32(i % 97)
	}

	a, err := ndgo.FromSlice(data, ndgo.Shape{rows, cols})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("--- Views ---")

	row, err := a.View(42)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Row 42 shape:", row.Shape())

	block, err := a.Slice(0, ndgo.Range{Start: 10, Stop: 20, Step: 2})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Strided block shape:", block.Shape())

	dir, err := os.MkdirTemp("", "ndgo-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	fmt.Println("\n--- File persistence ---")

	path := filepath.Join(dir, "matrix.nda")

	start := time.Now()

	if err := persist.Save(ctx, path, a, persist.WithCompression(persist.CompressionZstd)); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Save seconds: %.4f\n", time.Since(start).Seconds())

	start = time.Now()

	loaded, err := persist.Load[float32](ctx, path)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Load seconds: %.4f\n", time.Since(start).Seconds())
	fmt.Println("Roundtrip equal:", a.Equal(loaded))

	fmt.Println("\n--- Chunk store ---")

	store := chunkstore.New[float32](
		blobstore.NewLocalStore(filepath.Join(dir, "blobs")),
		chunkstore.WithChunkShape(ndgo.Shape{256, 256}),
		chunkstore.WithWorkers(4),
	)

	start = time.Now()

	manifest, err := store.Write(ctx, "matrix", a)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Write seconds: %.4f\n", time.Since(start).Seconds())
	fmt.Println("Version:", manifest.Version)
	fmt.Println("Chunk grid:", manifest.Grid())

	chunk, err := store.ReadChunk(ctx, "matrix", 1, 2)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Chunk (1,2) shape:", chunk.Shape())

	start = time.Now()

	restored, err := store.Read(ctx, "matrix")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Read seconds: %.4f\n", time.Since(start).Seconds())
	fmt.Println("Roundtrip equal:", a.Equal(restored))
}
