package extract

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"log/slog"

	"github.com/improveai/firehose-unpack/rate_limiter"
	"github.com/improveai/firehose-unpack/storage"
)

// source records can be large; bufio's default 64K cap is not enough
const maxLineSize = 1024 * 1024

// LineHandler handles one raw record line. The extractor does not pull
// the next line from the stream until the handler returns, so memory is
// bounded by one line per stream and the source can never run ahead of
// classification.
type LineHandler func(line []byte) error

// Extractor streams gzip source objects out of storage one line at a time.
type Extractor struct {
	store   storage.ObjectStore
	limiter *rate_limiter.Limiter
}

func NewExtractor(store storage.ObjectStore, limiter *rate_limiter.Limiter) *Extractor {
	return &Extractor{store: store, limiter: limiter}
}

// ExtractObject opens ref, decompresses it and hands every
// newline-delimited record to handle, in source order. Any open, read or
// decompression error is returned as this source object's failure; the
// sequence cannot be restarted.
func (e *Extractor) ExtractObject(ctx context.Context, ref storage.ObjectRef, handle LineHandler) error {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("error acquiring stream limiter: %w", err)
		}
		defer e.limiter.Release()
	}

	slog.Debug("extracting source object", "object", ref.String())

	body, err := e.store.GetObject(ctx, ref)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", ref, err)
	}
	defer body.Close()

	gzReader, err := gzip.NewReader(body)
	if err != nil {
		return fmt.Errorf("error creating gzip reader for %s: %w", ref, err)
	}
	defer gzReader.Close()

	scanner := bufio.NewScanner(gzReader)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	lines := 0
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := handle(scanner.Bytes()); err != nil {
			return err
		}
		lines++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading %s: %w", ref, err)
	}

	slog.Debug("source object drained", "object", ref.String(), "lines", lines)
	return nil
}
