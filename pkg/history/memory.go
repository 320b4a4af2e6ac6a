package history

import "sync"

// MemoryRecorder keeps history for the lifetime of the process
type MemoryRecorder struct {
	mu      sync.RWMutex
	entries []Entry
	max     int
	closed  bool
}

// NewMemoryRecorder creates an in-memory recorder holding at most max
// entries (0 for no bound)
func NewMemoryRecorder(max int) *MemoryRecorder {
	return &MemoryRecorder{max: max}
}

// Record appends an entry
func (m *MemoryRecorder) Record(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	m.entries = append(m.entries, e)
	if m.max > 0 && len(m.entries) > m.max {
		m.entries = append([]Entry(nil), m.entries[len(m.entries)-m.max:]...)
	}
	return nil
}

// List returns matching entries, oldest first
func (m *MemoryRecorder) List(q Query) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	var out []Entry
	for _, e := range m.entries {
		if q.matches(e) {
			out = append(out, e)
		}
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[len(out)-q.Limit:]
	}
	return out, nil
}

// Clear removes every entry
func (m *MemoryRecorder) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.entries = nil
	return nil
}

// Close is a no-op beyond rejecting further use
func (m *MemoryRecorder) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}
