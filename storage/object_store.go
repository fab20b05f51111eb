package storage

import (
	"context"
	"fmt"
	"io"
)

// ObjectRef identifies one object in a bucket.
type ObjectRef struct {
	Bucket string
	Key    string
}

func (r ObjectRef) String() string {
	return fmt.Sprintf("s3://%s/%s", r.Bucket, r.Key)
}

// ObjectStore is the storage surface the pipeline needs: streaming reads
// of source objects and one-shot writes of destination objects.
type ObjectStore interface {
	// GetObject opens a read stream for the referenced object.
	// The caller owns the returned stream and must close it.
	GetObject(ctx context.Context, ref ObjectRef) (io.ReadCloser, error)
	// PutObject writes body as the referenced object, overwriting any
	// existing object at that key.
	PutObject(ctx context.Context, ref ObjectRef, body []byte) error
}
