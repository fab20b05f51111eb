package notification

import (
	"encoding/json"
	"log/slog"
	"net/url"

	"github.com/aws/aws-lambda-go/events"

	"github.com/improveai/firehose-unpack/storage"
)

// Decode flattens one SNS batch into the source objects it references.
// Each SNS record's message is expected to embed an S3 event envelope.
// A wrapper with an unparseable message, or a storage event with no
// object descriptor, is logged and skipped; decoding never fails the
// invocation. An empty result is a valid no-op batch.
func Decode(batch events.SNSEvent) []storage.ObjectRef {
	var refs []storage.ObjectRef
	for i, wrapper := range batch.Records {
		var s3Event events.S3Event
		if err := json.Unmarshal([]byte(wrapper.SNS.Message), &s3Event); err != nil {
			slog.Warn("skipping notification with unparseable message", "index", i, "error", err)
			continue
		}
		for _, entry := range s3Event.Records {
			bucket := entry.S3.Bucket.Name
			// object keys arrive URL-encoded in S3 event notifications
			key, err := url.QueryUnescape(entry.S3.Object.Key)
			if err != nil {
				slog.Warn("skipping storage event with undecodable key", "bucket", bucket, "key", entry.S3.Object.Key, "error", err)
				continue
			}
			if bucket == "" || key == "" {
				slog.Warn("skipping storage event with no object descriptor", "bucket", bucket, "key", key)
				continue
			}
			refs = append(refs, storage.ObjectRef{Bucket: bucket, Key: key})
		}
	}
	return refs
}
