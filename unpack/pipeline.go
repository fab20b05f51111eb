package unpack

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/aws/aws-lambda-go/events"
	"golang.org/x/sync/errgroup"

	"github.com/improveai/firehose-unpack/config"
	"github.com/improveai/firehose-unpack/extract"
	"github.com/improveai/firehose-unpack/flush"
	"github.com/improveai/firehose-unpack/notification"
	"github.com/improveai/firehose-unpack/partition"
	"github.com/improveai/firehose-unpack/rate_limiter"
	"github.com/improveai/firehose-unpack/record"
	"github.com/improveai/firehose-unpack/storage"
)

// Result summarizes one pipeline invocation.
type Result struct {
	SourceObjects  int
	RecordsKept    int
	RecordsDropped int
	Partitions     int
	BytesWritten   int64
}

// Pipeline unpacks batches of gzip source objects into re-partitioned
// destination objects grouped by (record type, project, model, time
// bucket). Each Run is one invocation with its own clock/id and
// accumulator; a Pipeline is safe to reuse across runs.
type Pipeline struct {
	store          storage.ObjectStore
	trainBucket    string
	maxConcurrency int64
}

func New(store storage.ObjectStore, cfg *config.Config) *Pipeline {
	return &Pipeline{
		store:          store,
		trainBucket:    cfg.TrainBucket,
		maxConcurrency: cfg.MaxConcurrency,
	}
}

// Run processes one notification batch to completion. A nil error means
// every intended destination object was written. On any source stream
// failure the flush phase is skipped entirely and accumulated buffers are
// discarded; on a flush failure, objects already written stay written.
func (p *Pipeline) Run(ctx context.Context, batch events.SNSEvent) (Result, error) {
	return p.run(ctx, batch, partition.NewInvocation())
}

// run is separate so tests can pin the invocation clock/id.
func (p *Pipeline) run(ctx context.Context, batch events.SNSEvent, inv partition.Invocation) (Result, error) {
	refs := notification.Decode(batch)
	slog.Info("starting firehose unpack", "invocation", inv.ID, "source_objects", len(refs))

	res := Result{SourceObjects: len(refs)}

	classifier := record.NewClassifier(inv)
	accumulator := partition.NewAccumulator()
	limiter := rate_limiter.New("source_stream_limiter", p.maxConcurrency)
	extractor := extract.NewExtractor(p.store, limiter)

	var kept, dropped atomic.Int64

	// extraction phase: one goroutine per source object, all feeding the
	// shared accumulator; the first stream failure cancels the rest
	g, gctx := errgroup.WithContext(ctx)
	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			return extractor.ExtractObject(gctx, ref, func(line []byte) error {
				classified, ok := classifier.Classify(line)
				if !ok {
					dropped.Add(1)
					return nil
				}
				accumulator.Append(classified.Key, classified.Data)
				kept.Add(1)
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		// a stream failure aborts the whole invocation before flush;
		// buffers from source objects that succeeded are discarded
		return res, err
	}

	res.RecordsKept = int(kept.Load())
	res.RecordsDropped = int(dropped.Load())

	// flush phase: the accumulator is read-only from here on
	flusher := flush.NewFlusher(p.store, p.trainBucket)
	flushRes, err := flusher.Flush(ctx, accumulator.Partitions())
	if err != nil {
		return res, err
	}
	res.Partitions = flushRes.Objects
	res.BytesWritten = flushRes.Bytes

	slog.Info("finished firehose unpack",
		"invocation", inv.ID,
		"records", res.RecordsKept,
		"dropped", res.RecordsDropped,
		"partitions", res.Partitions,
		"bytes", res.BytesWritten)
	return res, nil
}
