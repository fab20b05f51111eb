package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStore is an in-memory [ObjectStore] used by tests. Reads and writes
// can be made to fail per-object to exercise error paths.
type MemoryStore struct {
	mut     sync.Mutex
	objects map[ObjectRef][]byte
	getErrs map[ObjectRef]error
	putErrs map[ObjectRef]error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[ObjectRef][]byte),
		getErrs: make(map[ObjectRef]error),
		putErrs: make(map[ObjectRef]error),
	}
}

// SetObject stores data as the referenced object.
func (m *MemoryStore) SetObject(ref ObjectRef, data []byte) {
	m.mut.Lock()
	defer m.mut.Unlock()
	m.objects[ref] = bytes.Clone(data)
}

// FailGet makes subsequent GetObject calls for ref return err.
func (m *MemoryStore) FailGet(ref ObjectRef, err error) {
	m.mut.Lock()
	defer m.mut.Unlock()
	m.getErrs[ref] = err
}

// FailPut makes subsequent PutObject calls for ref return err.
func (m *MemoryStore) FailPut(ref ObjectRef, err error) {
	m.mut.Lock()
	defer m.mut.Unlock()
	m.putErrs[ref] = err
}

func (m *MemoryStore) GetObject(_ context.Context, ref ObjectRef) (io.ReadCloser, error) {
	m.mut.Lock()
	defer m.mut.Unlock()
	if err := m.getErrs[ref]; err != nil {
		return nil, err
	}
	data, ok := m.objects[ref]
	if !ok {
		return nil, fmt.Errorf("no such object %s", ref)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MemoryStore) PutObject(_ context.Context, ref ObjectRef, body []byte) error {
	m.mut.Lock()
	defer m.mut.Unlock()
	if err := m.putErrs[ref]; err != nil {
		return err
	}
	m.objects[ref] = bytes.Clone(body)
	return nil
}

// Objects returns a snapshot of everything currently stored.
func (m *MemoryStore) Objects() map[ObjectRef][]byte {
	m.mut.Lock()
	defer m.mut.Unlock()
	res := make(map[ObjectRef][]byte, len(m.objects))
	for k, v := range m.objects {
		res[k] = bytes.Clone(v)
	}
	return res
}
