package cursor

import "sync"

// A pointer location on the canvas
type Position struct {
	X float64
	Y float64
}

// Tracks the last received pointer position per remote participant.
// Purely visual state; nothing here is persisted or broadcast back.
type Tracker struct {
	positions map[string]Position
	mu        sync.RWMutex
}

func NewTracker() *Tracker {
	return &Tracker{
		positions: make(map[string]Position),
	}
}

// Records a participant's pointer position, superseding the previous one
func (t *Tracker) Update(participant string, pos Position) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.positions[participant] = pos
}

// Returns the last received position for a participant
func (t *Tracker) Position(participant string) (Position, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	pos, ok := t.positions[participant]
	return pos, ok
}

// Drops a participant's indicator, for disconnects
func (t *Tracker) Remove(participant string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.positions, participant)
}

func (t *Tracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.positions)
}
