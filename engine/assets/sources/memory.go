package sources

import (
	"fmt"
	"io/fs"
	"sync"
	"time"
)

type memoryEntry struct {
	data     []byte
	modified int64
}

// Memory serves assets from an in-process map. Useful for tests, embedded
// defaults and procedurally generated data.
type Memory struct {
	mu    sync.RWMutex
	files map[string]memoryEntry
}

func NewMemory() *Memory {
	return &Memory{files: make(map[string]memoryEntry)}
}

// Insert stores (or replaces) the named asset's bytes.
func (m *Memory) Insert(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = memoryEntry{
		data:     append([]byte(nil), data...),
		modified: time.Now().UnixNano(),
	}
}

func (m *Memory) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, name)
}

func (m *Memory) Load(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("no in-memory asset %q: %w", name, fs.ErrNotExist)
	}
	return append([]byte(nil), entry.data...), nil
}

func (m *Memory) Modified(name string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.files[name]
	if !ok {
		return 0, fmt.Errorf("no in-memory asset %q: %w", name, fs.ErrNotExist)
	}
	return entry.modified, nil
}
