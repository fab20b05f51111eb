package partition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testClock = time.Date(2024, 1, 15, 9, 30, 12, 0, time.UTC)

func TestInvocationKey(t *testing.T) {
	inv := NewInvocationAt(testClock, "4f6c2a9e")

	tests := []struct {
		name       string
		project    string
		recordType string
		model      string
		want       string
	}{
		{
			name:       "choose with model",
			project:    "bible",
			recordType: "choose",
			model:      "verses",
			want:       "bible/choose/verses/2024/01/15/09/improve-v3-bible-choose-verses-2024-01-15-09-30-12-4f6c2a9e.gz",
		},
		{
			name:       "using with model",
			project:    "bible",
			recordType: "using",
			model:      "verses",
			want:       "bible/using/verses/2024/01/15/09/improve-v3-bible-using-verses-2024-01-15-09-30-12-4f6c2a9e.gz",
		},
		{
			name:       "rewards without model",
			project:    "bible",
			recordType: "rewards",
			model:      "",
			want:       "bible/rewards/2024/01/15/09/improve-v3-bible-rewards-2024-01-15-09-30-12-4f6c2a9e.gz",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inv.Key(tt.project, tt.recordType, tt.model))
		})
	}
}

func TestInvocationKeyDeterministicWithinInvocation(t *testing.T) {
	inv := NewInvocationAt(testClock, "4f6c2a9e")

	first := inv.Key("messages", "choose", "greetings")
	second := inv.Key("messages", "choose", "greetings")
	assert.Equal(t, first, second)
}

func TestInvocationKeyDiffersAcrossInvocations(t *testing.T) {
	// same logical inputs, different clock/id
	a := NewInvocationAt(testClock, "aaaa")
	b := NewInvocationAt(testClock.Add(time.Second), "aaaa")
	c := NewInvocationAt(testClock, "bbbb")

	assert.NotEqual(t, a.Key("p", "rewards", ""), b.Key("p", "rewards", ""))
	assert.NotEqual(t, a.Key("p", "rewards", ""), c.Key("p", "rewards", ""))
}

func TestNewInvocationUsesUTC(t *testing.T) {
	local := time.Date(2024, 6, 1, 23, 30, 0, 0, time.FixedZone("UTC+2", 2*60*60))
	inv := NewInvocationAt(local, "id")

	// 23:30+02:00 is 21:30 UTC
	assert.Equal(t, "2024/06/01/21", inv.PathBucket)
	assert.Equal(t, "2024-06-01-21-30-00", inv.FileBucket)
}

func TestNewInvocationRandomIDs(t *testing.T) {
	a := NewInvocation()
	b := NewInvocation()
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}
