package history

import "sync"

// Linear undo/redo over canvas snapshots, most-recent-last. The first
// entry is the initial canvas state and is never popped. Owned by a
// single board controller; never shared across participants.
type Manager struct {
	history [][]byte
	redo    [][]byte
	mu      sync.Mutex
}

// Creates a manager seeded with the initial canvas snapshot
func New(initial []byte) *Manager {
	return &Manager{
		history: [][]byte{initial},
	}
}

// Pushes the given snapshot as the new top of history. Any redo
// entries become unreachable and are discarded.
func (m *Manager) Record(snapshot []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, snapshot)
	m.redo = nil
}

// Pops the current top onto the redo stack and returns the snapshot to
// repaint from. Returns false at the initial entry.
func (m *Manager) Undo() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.history) <= 1 {
		return nil, false
	}

	top := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.redo = append(m.redo, top)

	return m.history[len(m.history)-1], true
}

// Moves the top of the redo stack back onto history and returns it for
// repaint. Returns false when there is nothing to redo.
func (m *Manager) Redo() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.redo) == 0 {
		return nil, false
	}

	top := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.history = append(m.history, top)

	return top, true
}

// Returns the snapshot at the top of history
func (m *Manager) Current() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history[len(m.history)-1]
}

// Number of history entries, including the initial one
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.history)
}

// Number of entries available to redo
func (m *Manager) RedoLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redo)
}
