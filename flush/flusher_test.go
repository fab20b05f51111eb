package flush

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/improveai/firehose-unpack/storage"
)

func gunzip(t *testing.T, data []byte) []byte {
	t.Helper()
	gz, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer gz.Close()
	out, err := io.ReadAll(gz)
	require.NoError(t, err)
	return out
}

func TestFlushWritesAllPartitions(t *testing.T) {
	store := storage.NewMemoryStore()
	f := NewFlusher(store, "train")

	partitions := map[string][]byte{
		"p/choose/m/key-1.gz": []byte("{\"a\":1}\n{\"a\":2}\n"),
		"p/rewards/key-2.gz":  []byte("{\"rewards\":{}}\n"),
	}
	res, err := f.Flush(context.Background(), partitions)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Objects)
	assert.Positive(t, res.Bytes)

	objects := store.Objects()
	require.Len(t, objects, 2)
	for key, want := range partitions {
		got, ok := objects[storage.ObjectRef{Bucket: "train", Key: key}]
		require.True(t, ok, "missing destination object %s", key)
		assert.Equal(t, want, gunzip(t, got))
	}
}

func TestFlushSkipsEmptyPartitions(t *testing.T) {
	store := storage.NewMemoryStore()
	f := NewFlusher(store, "train")

	res, err := f.Flush(context.Background(), map[string][]byte{
		"empty.gz": nil,
		"full.gz":  []byte("{}\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Objects)
	assert.Len(t, store.Objects(), 1)
}

func TestFlushNothingToFlush(t *testing.T) {
	store := storage.NewMemoryStore()
	f := NewFlusher(store, "train")

	res, err := f.Flush(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, res.Objects)
	assert.Empty(t, store.Objects())
}

func TestFlushReportsWriteFailure(t *testing.T) {
	store := storage.NewMemoryStore()
	writeErr := errors.New("throttled")
	store.FailPut(storage.ObjectRef{Bucket: "train", Key: "bad.gz"}, writeErr)

	f := NewFlusher(store, "train")
	_, err := f.Flush(context.Background(), map[string][]byte{
		"bad.gz":  []byte("{}\n"),
		"good.gz": []byte("{}\n"),
	})
	assert.ErrorIs(t, err, writeErr)
}
