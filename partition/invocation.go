package partition

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	pathBucketLayout = "2006/01/02/15"
	fileBucketLayout = "2006-01-02-15-04-05"
)

// Invocation carries the clock and random identifier shared by every
// destination key produced during one pipeline run. It is computed once,
// before any source object is opened, so that partitions produced
// concurrently by different extractors are named consistently and never
// collide with another run's output.
type Invocation struct {
	StartedAt time.Time
	// hour-granularity path bucket, e.g. 2024/01/15/09
	PathBucket string
	// second-granularity filename bucket, e.g. 2024-01-15-09-30-12
	FileBucket string
	// random identifier distinguishing runs that start in the same second
	ID string
}

func NewInvocation() Invocation {
	return NewInvocationAt(time.Now(), uuid.NewString())
}

// NewInvocationAt pins the clock and identifier, for deterministic keys in tests.
func NewInvocationAt(now time.Time, id string) Invocation {
	now = now.UTC()
	return Invocation{
		StartedAt:  now,
		PathBucket: now.Format(pathBucketLayout),
		FileBucket: now.Format(fileBucketLayout),
		ID:         id,
	}
}

// Key derives the destination object key for records sharing (recordType,
// project, model). Model must be empty for record types that do not carry
// one. Identical inputs always yield identical keys within one invocation.
//
// Layout:
//
//	{project}/{type}/[{model}/]{yyyy}/{MM}/{dd}/{hh}/improve-v3-{project}-{type}-[{model}-]{yyyy}-{MM}-{dd}-{hh}-{mm}-{ss}-{id}.gz
func (inv Invocation) Key(project, recordType, model string) string {
	var b strings.Builder
	b.WriteString(project)
	b.WriteByte('/')
	b.WriteString(recordType)
	b.WriteByte('/')
	if model != "" {
		b.WriteString(model)
		b.WriteByte('/')
	}
	b.WriteString(inv.PathBucket)
	b.WriteString("/improve-v3-")
	b.WriteString(project)
	b.WriteByte('-')
	b.WriteString(recordType)
	b.WriteByte('-')
	if model != "" {
		b.WriteString(model)
		b.WriteByte('-')
	}
	b.WriteString(inv.FileBucket)
	b.WriteByte('-')
	b.WriteString(inv.ID)
	b.WriteString(".gz")
	return b.String()
}
