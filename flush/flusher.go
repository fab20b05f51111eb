package flush

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/improveai/firehose-unpack/storage"
)

// Result summarizes one flush phase.
type Result struct {
	Objects int
	Bytes   int64
}

// Flusher compresses accumulated partitions and writes them to the
// destination bucket.
type Flusher struct {
	store  storage.ObjectStore
	bucket string
}

func NewFlusher(store storage.ObjectStore, bucket string) *Flusher {
	return &Flusher{store: store, bucket: bucket}
}

// Flush writes every non-empty partition in parallel and waits for all
// writes to finish, reporting the first error. Writes already issued when
// an error occurs are not rolled back.
func (f *Flusher) Flush(ctx context.Context, partitions map[string][]byte) (Result, error) {
	var (
		mut sync.Mutex
		res Result
	)

	g, ctx := errgroup.WithContext(ctx)
	for key, data := range partitions {
		if len(data) == 0 {
			continue
		}
		key, data := key, data
		g.Go(func() error {
			compressed, err := compress(data)
			if err != nil {
				return fmt.Errorf("error compressing partition %s: %w", key, err)
			}

			ref := storage.ObjectRef{Bucket: f.bucket, Key: key}
			if err := f.store.PutObject(ctx, ref, compressed); err != nil {
				return fmt.Errorf("error writing partition: %w", err)
			}
			slog.Debug("wrote partition", "object", ref.String(), "bytes", len(compressed))

			mut.Lock()
			res.Objects++
			res.Bytes += int64(len(compressed))
			mut.Unlock()
			return nil
		})
	}

	err := g.Wait()
	return res, err
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
