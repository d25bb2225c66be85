package board

import (
	"fmt"
	"log"
	"sync"

	"github.com/FidelesCadito/real-time-whiteboard-fideles-cadito/internal/canvas"
	"github.com/FidelesCadito/real-time-whiteboard-fideles-cadito/internal/cursor"
	"github.com/FidelesCadito/real-time-whiteboard-fideles-cadito/internal/history"
	"github.com/FidelesCadito/real-time-whiteboard-fideles-cadito/internal/protocol"
	"github.com/FidelesCadito/real-time-whiteboard-fideles-cadito/internal/store"
)

// Outbound path to the relay. Satisfied by *Conn; tests substitute a
// fake to capture sent payloads.
type Sender interface {
	Send(data []byte) error
}

// One participant's client state: the canvas, its undo/redo history,
// remote cursor indicators, and the persistence bridge. Never shared
// between participants.
type Board struct {
	canvas  *canvas.Canvas
	history *history.Manager
	cursors *cursor.Tracker
	store   store.Store
	sender  Sender
	mu      sync.Mutex
}

// Creates a board around an existing canvas. The history is seeded
// with the canvas's current state so undo can always return to it.
func New(c *canvas.Canvas, st store.Store, sender Sender) (*Board, error) {
	initial, err := c.Snapshot()
	if err != nil {
		return nil, err
	}

	return &Board{
		canvas:  c,
		history: history.New(initial),
		cursors: cursor.NewTracker(),
		store:   st,
		sender:  sender,
	}, nil
}

// Paints a locally authored segment, then sends it to the relay. The
// local paint happens regardless of whether the send succeeds.
func (b *Board) DrawLocal(seg canvas.Segment) error {
	b.mu.Lock()
	b.canvas.DrawSegment(seg)
	b.mu.Unlock()

	data, err := protocol.EncodeDraw(protocol.DrawEvent{
		PrevX: seg.PrevX,
		PrevY: seg.PrevY,
		X:     seg.X,
		Y:     seg.Y,
		Color: seg.Color,
		Size:  seg.Size,
	})
	if err != nil {
		return err
	}

	if err := b.sender.Send(data); err != nil {
		return fmt.Errorf("relay send failed: %w", err)
	}
	return nil
}

// Sends the local pointer position to the relay
func (b *Board) MoveCursor(x, y float64) error {
	data, err := protocol.EncodeCursor(protocol.CursorEvent{X: x, Y: y})
	if err != nil {
		return err
	}

	if err := b.sender.Send(data); err != nil {
		return fmt.Errorf("relay send failed: %w", err)
	}
	return nil
}

// Applies an event received from the relay. Draw segments are painted
// exactly as local ones; cursor updates are attributed to the given
// participant key. Malformed or unknown events are ignored.
func (b *Board) Handle(participant string, raw []byte) {
	switch protocol.ParseType(raw) {
	case protocol.TypeDraw:
		event, err := protocol.DecodeDraw(raw)
		if err != nil {
			log.Printf("Ignoring malformed draw event: %v", err)
			return
		}
		b.mu.Lock()
		b.canvas.DrawSegment(canvas.Segment{
			PrevX: event.PrevX,
			PrevY: event.PrevY,
			X:     event.X,
			Y:     event.Y,
			Color: event.Color,
			Size:  event.Size,
		})
		b.mu.Unlock()

	case protocol.TypeCursor:
		event, err := protocol.DecodeCursor(raw)
		if err != nil {
			log.Printf("Ignoring malformed cursor event: %v", err)
			return
		}
		b.cursors.Update(participant, cursor.Position{X: event.X, Y: event.Y})
	}
}

// Pushes the current canvas state as a new history entry
func (b *Board) RecordSnapshot() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	snapshot, err := b.canvas.Snapshot()
	if err != nil {
		return err
	}
	b.history.Record(snapshot)
	return nil
}

// Steps back one history entry and repaints. No-op at the initial
// canvas state.
func (b *Board) Undo() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	snapshot, ok := b.history.Undo()
	if !ok {
		return nil
	}
	return b.canvas.Restore(snapshot)
}

// Re-applies the last undone entry and repaints. No-op when nothing
// has been undone since the last new stroke.
func (b *Board) Redo() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	snapshot, ok := b.history.Redo()
	if !ok {
		return nil
	}
	return b.canvas.Restore(snapshot)
}

// Persists the current canvas as a new document in the store
func (b *Board) Save() error {
	b.mu.Lock()
	snapshot, err := b.canvas.Snapshot()
	b.mu.Unlock()
	if err != nil {
		return err
	}

	if _, err := b.store.Create(snapshot); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}
	return nil
}

// Composites every stored document onto the canvas in store order.
// Loading is additive: later documents paint over earlier ones, and
// loading twice draws everything twice.
func (b *Board) Load() error {
	docs, err := b.store.ListAll()
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, doc := range docs {
		if err := b.canvas.Composite(doc.Image); err != nil {
			return fmt.Errorf("load failed: %w", err)
		}
	}
	return nil
}

// Returns the last received cursor position for a participant
func (b *Board) Cursor(participant string) (cursor.Position, bool) {
	return b.cursors.Position(participant)
}

// Returns the board's canvas for rendering and inspection
func (b *Board) Canvas() *canvas.Canvas {
	return b.canvas
}
