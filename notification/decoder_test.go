package notification

import (
	"encoding/json"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/improveai/firehose-unpack/storage"
)

func s3Message(t *testing.T, refs ...storage.ObjectRef) string {
	t.Helper()
	var e events.S3Event
	for _, ref := range refs {
		e.Records = append(e.Records, events.S3EventRecord{
			S3: events.S3Entity{
				Bucket: events.S3Bucket{Name: ref.Bucket},
				Object: events.S3Object{Key: ref.Key},
			},
		})
	}
	raw, err := json.Marshal(e)
	require.NoError(t, err)
	return string(raw)
}

func wrap(messages ...string) events.SNSEvent {
	var batch events.SNSEvent
	for _, m := range messages {
		batch.Records = append(batch.Records, events.SNSEventRecord{
			SNS: events.SNSEntity{Message: m},
		})
	}
	return batch
}

func TestDecodeFlattensBatch(t *testing.T) {
	a := storage.ObjectRef{Bucket: "firehose", Key: "2024/01/15/batch-1.gz"}
	b := storage.ObjectRef{Bucket: "firehose", Key: "2024/01/15/batch-2.gz"}
	c := storage.ObjectRef{Bucket: "firehose", Key: "2024/01/15/batch-3.gz"}

	refs := Decode(wrap(s3Message(t, a, b), s3Message(t, c)))
	assert.Equal(t, []storage.ObjectRef{a, b, c}, refs)
}

func TestDecodeSkipsMalformedWrapper(t *testing.T) {
	good := storage.ObjectRef{Bucket: "firehose", Key: "ok.gz"}

	refs := Decode(wrap("not json at all", s3Message(t, good), ""))
	assert.Equal(t, []storage.ObjectRef{good}, refs)
}

func TestDecodeSkipsEntryWithoutObjectDescriptor(t *testing.T) {
	good := storage.ObjectRef{Bucket: "firehose", Key: "ok.gz"}

	refs := Decode(wrap(s3Message(t,
		storage.ObjectRef{Bucket: "", Key: "orphan.gz"},
		storage.ObjectRef{Bucket: "firehose", Key: ""},
		good,
	)))
	assert.Equal(t, []storage.ObjectRef{good}, refs)
}

func TestDecodeUnescapesObjectKeys(t *testing.T) {
	refs := Decode(wrap(s3Message(t,
		storage.ObjectRef{Bucket: "firehose", Key: "2024/01/15/batch+with+spaces%3D1.gz"},
	)))
	require.Len(t, refs, 1)
	assert.Equal(t, "2024/01/15/batch with spaces=1.gz", refs[0].Key)
}

func TestDecodeEmptyBatch(t *testing.T) {
	assert.Empty(t, Decode(events.SNSEvent{}))
	assert.Empty(t, Decode(wrap()))
}
