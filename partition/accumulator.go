package partition

import (
	"bytes"
	"sync"
)

// Accumulator is the single shared mapping from destination key to an
// append-only buffer of serialized records. All extractors active in one
// invocation append to it concurrently; it is write-only during the
// extraction phase and read-only during the flush phase, which never
// overlap.
type Accumulator struct {
	mut     sync.Mutex
	buffers map[string]*bytes.Buffer
}

func NewAccumulator() *Accumulator {
	return &Accumulator{buffers: make(map[string]*bytes.Buffer)}
}

// Append adds data to the buffer for key, creating the buffer on first
// use. Safe for concurrent use.
func (a *Accumulator) Append(key string, data []byte) {
	a.mut.Lock()
	defer a.mut.Unlock()
	buf, ok := a.buffers[key]
	if !ok {
		buf = &bytes.Buffer{}
		a.buffers[key] = buf
	}
	buf.Write(data)
}

// Len returns the number of partitions accumulated so far.
func (a *Accumulator) Len() int {
	a.mut.Lock()
	defer a.mut.Unlock()
	return len(a.buffers)
}

// Partitions returns the accumulated buffers keyed by destination key.
// Must not be called until every extractor has finished; the returned
// slices alias the accumulator's backing buffers.
func (a *Accumulator) Partitions() map[string][]byte {
	a.mut.Lock()
	defer a.mut.Unlock()
	res := make(map[string][]byte, len(a.buffers))
	for key, buf := range a.buffers {
		res[key] = buf.Bytes()
	}
	return res
}
