package cart

import (
	"errors"
	"testing"
)

type memSlot struct {
	value    string
	readErr  error
	writeErr error
}

func (m *memSlot) Read() (string, error) {
	if m.readErr != nil {
		return "", m.readErr
	}
	return m.value, nil
}

func (m *memSlot) Write(value string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.value = value
	return nil
}

func TestAddIncrementsExistingLine(t *testing.T) {
	t.Parallel()

	store := NewStore(&memSlot{})
	if err := store.Add("price_x", "Soup"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := store.Add("price_x", "Soup"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected one line, got %d", len(items))
	}
	if items[0].Qty != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Qty)
	}
}

func TestAddAppendsInOrder(t *testing.T) {
	t.Parallel()

	store := NewStore(&memSlot{})
	store.Add("price_a", "Soup")
	store.Add("price_b", "Bread")
	store.Add("price_a", "Soup")

	items := store.Items()
	if len(items) != 2 {
		t.Fatalf("expected two lines, got %d", len(items))
	}
	if items[0].PriceID != "price_a" || items[1].PriceID != "price_b" {
		t.Fatalf("insertion order not preserved: %+v", items)
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	t.Parallel()

	store := NewStore(&memSlot{})
	store.Add("price_x", "Soup")
	store.Add("price_y", "Bread")

	if err := store.SetQuantity("price_x", 0); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}

	items := store.Items()
	if len(items) != 1 || items[0].PriceID != "price_y" {
		t.Fatalf("expected only price_y to remain, got %+v", items)
	}
}

func TestSetQuantityUnknownIDIsNoOp(t *testing.T) {
	t.Parallel()

	store := NewStore(&memSlot{})
	store.Add("price_x", "Soup")

	if err := store.SetQuantity("price_missing", 5); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	items := store.Items()
	if len(items) != 1 || items[0].PriceID != "price_x" || items[0].Qty != 1 {
		t.Fatalf("no-op expected, got %+v", items)
	}
}

func TestClearRemovesAllLines(t *testing.T) {
	t.Parallel()

	store := NewStore(&memSlot{})
	store.Add("price_x", "Soup")
	store.Add("price_y", "Bread")

	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if items := store.Items(); len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
}

func TestCorruptSlotDegradesToEmptyCart(t *testing.T) {
	t.Parallel()

	store := NewStore(&memSlot{value: "{not json"})
	if items := store.Items(); len(items) != 0 {
		t.Fatalf("corrupt slot must read as empty, got %+v", items)
	}

	// A mutation on top of the corrupt slot starts from scratch.
	if err := store.Add("price_x", "Soup"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if items := store.Items(); len(items) != 1 || items[0].Qty != 1 {
		t.Fatalf("expected fresh cart, got %+v", items)
	}
}

func TestReadFailureDegradesToEmptyCart(t *testing.T) {
	t.Parallel()

	store := NewStore(&memSlot{readErr: errors.New("quota exceeded")})
	if items := store.Items(); len(items) != 0 {
		t.Fatalf("read failure must yield empty cart, got %+v", items)
	}
}

func TestItemsReturnsSnapshot(t *testing.T) {
	t.Parallel()

	store := NewStore(&memSlot{})
	store.Add("price_x", "Soup")

	items := store.Items()
	items[0].Qty = 99

	if got := store.Items(); got[0].Qty != 1 {
		t.Fatalf("mutating a snapshot must not affect the store, got %+v", got)
	}
}

func TestFileSlotRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStore(NewFileSlot(dir))

	store.Add("price_soup", "Soup")
	store.Add("price_soup", "Soup")
	store.Add("price_bread", "Bread")

	// Re-open the same slot: identical ordered sequence.
	reloaded := NewStore(NewFileSlot(dir))
	items := reloaded.Items()
	if len(items) != 2 {
		t.Fatalf("expected two lines after reload, got %d", len(items))
	}
	if items[0].PriceID != "price_soup" || items[0].Qty != 2 || items[1].PriceID != "price_bread" {
		t.Fatalf("round trip altered the cart: %+v", items)
	}
}

func TestFileSlotMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	store := NewStore(NewFileSlot(t.TempDir()))
	if items := store.Items(); len(items) != 0 {
		t.Fatalf("expected empty cart for fresh slot, got %+v", items)
	}
}
