package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	hori = Item{ID: 1, Name: "HORI Split Pad Compact", Brand: "HORI", Price: 369.99, Image: "/assets/hori-main.png"}
	r36s = Item{ID: 2, Name: "Console R36S", Brand: "R36S", Price: 274.99, Image: "/assets/r36s-main.png"}
)

func TestAdd_NewLine(t *testing.T) {
	c := New()
	c.Add(hori)

	s := c.Snapshot()
	require.Len(t, s.Lines, 1)
	assert.Equal(t, 1, s.Lines[0].Quantity)
	assert.Equal(t, 1, s.TotalItems)
	assert.Equal(t, 369.99, s.TotalPrice)
}

func TestAdd_SameIDMergesIntoOneLine(t *testing.T) {
	c := New()
	c.Add(hori)
	c.Add(hori)

	s := c.Snapshot()
	require.Len(t, s.Lines, 1)
	assert.Equal(t, 2, s.Lines[0].Quantity)
	assert.Equal(t, 2, s.TotalItems)
}

func TestTotals_ConsistentAfterEveryMutation(t *testing.T) {
	c := New()

	check := func() {
		s := c.Snapshot()
		items := 0
		price := 0.0
		for _, l := range s.Lines {
			items += l.Quantity
			price += l.Price * float64(l.Quantity)
		}
		assert.Equal(t, items, s.TotalItems)
		assert.InDelta(t, price, s.TotalPrice, 1e-9)
	}

	c.Add(hori)
	check()
	c.Add(r36s)
	check()
	c.Add(hori)
	check()
	c.UpdateQuantity(2, 5)
	check()
	c.Remove(1)
	check()
	c.Clear()
	check()
	assert.Equal(t, 0, c.Snapshot().TotalItems)
	assert.Equal(t, 0.0, c.Snapshot().TotalPrice)
}

func TestUpdateQuantity_ZeroEqualsRemove(t *testing.T) {
	a := New()
	a.Add(hori)
	a.Add(r36s)
	a.UpdateQuantity(1, 0)

	b := New()
	b.Add(hori)
	b.Add(r36s)
	b.Remove(1)

	assert.Equal(t, b.Snapshot(), a.Snapshot())
}

func TestUpdateQuantity_UnknownIDIsNoop(t *testing.T) {
	c := New()
	c.Add(hori)
	c.UpdateQuantity(99, 3)

	s := c.Snapshot()
	require.Len(t, s.Lines, 1)
	assert.Equal(t, 1, s.TotalItems)
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	c := New()
	c.Add(hori)
	c.Remove(99)

	assert.Equal(t, 1, c.Snapshot().TotalItems)
}

func TestVisibilityFlagsAreIndependent(t *testing.T) {
	c := New()
	c.SetCartOpen(true)
	c.SetCheckoutOpen(true)

	s := c.Snapshot()
	assert.True(t, s.CartOpen)
	assert.True(t, s.CheckoutOpen)

	c.SetCartOpen(false)
	s = c.Snapshot()
	assert.False(t, s.CartOpen)
	assert.True(t, s.CheckoutOpen)
}

func TestFirstLine(t *testing.T) {
	c := New()
	_, ok := c.FirstLine()
	assert.False(t, ok)

	c.Add(r36s)
	c.Add(hori)
	first, ok := c.FirstLine()
	require.True(t, ok)
	assert.Equal(t, int64(2), first.ID)
}

func TestRestore_RecomputesTotals(t *testing.T) {
	s := State{
		Lines: []Line{
			{ID: 1, Price: 100, Quantity: 2},
			{ID: 2, Price: 50, Quantity: 1},
		},
		// Persisted totals are ignored on restore.
		TotalItems: 99,
		TotalPrice: 1,
		CartOpen:   true,
	}

	c := Restore(s)
	got := c.Snapshot()
	assert.Equal(t, 3, got.TotalItems)
	assert.Equal(t, 250.0, got.TotalPrice)
	assert.True(t, got.CartOpen)
}
