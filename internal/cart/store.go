package cart

import "encoding/json"

// Line is one cart entry. At most one line exists per price identifier.
type Line struct {
	PriceID string `json:"priceId"`
	Label   string `json:"label"`
	Qty     int    `json:"qty"`
}

// Slot is a single named cell of durable client storage holding the
// serialized cart. Implementations: FileSlot for real use, an in-memory
// slot in tests.
type Slot interface {
	Read() (string, error)
	Write(value string) error
}

// Store owns the persisted cart. Every operation reads, modifies and writes
// the whole collection; the host environment serializes calls, so there is
// no concurrent-mutation hazard to guard against.
type Store struct {
	slot Slot
}

func NewStore(slot Slot) *Store {
	return &Store{slot: slot}
}

// Add increments the quantity of an existing line or appends a new one with
// quantity 1.
func (s *Store) Add(priceID, label string) error {
	lines := s.load()
	for i := range lines {
		if lines[i].PriceID == priceID {
			lines[i].Qty++
			return s.save(lines)
		}
	}
	return s.save(append(lines, Line{PriceID: priceID, Label: label, Qty: 1}))
}

// SetQuantity replaces a line's quantity. A quantity of zero or less removes
// the line. Unknown identifiers are a no-op.
func (s *Store) SetQuantity(priceID string, qty int) error {
	lines := s.load()
	kept := lines[:0]
	for _, line := range lines {
		if line.PriceID == priceID {
			line.Qty = qty
		}
		if line.Qty > 0 {
			kept = append(kept, line)
		}
	}
	return s.save(kept)
}

// Clear removes all lines.
func (s *Store) Clear() error {
	return s.save(nil)
}

// Items returns a snapshot of the current lines, never a live reference.
func (s *Store) Items() []Line {
	lines := s.load()
	snapshot := make([]Line, len(lines))
	copy(snapshot, lines)
	return snapshot
}

// load swallows read and parse failures: a corrupt or missing slot is
// treated as "no cart yet", which is a safe, recoverable default.
func (s *Store) load() []Line {
	raw, err := s.slot.Read()
	if err != nil || raw == "" {
		return nil
	}
	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil
	}
	return lines
}

func (s *Store) save(lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.slot.Write(string(raw))
}
