package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cube(id string, price float64) Item {
	return Item{
		ProductID: id,
		Name:      "Cube " + id,
		Price:     decimal.NewFromFloat(price),
		Image:     "/img/" + id + ".jpg",
	}
}

func TestCart_AddItem_IncrementsOnCollision(t *testing.T) {
	c := New()

	c.AddItem(cube("p1", 19.99))
	c.AddItem(cube("p1", 19.99))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 2, c.TotalItems())
}

func TestCart_AddItem_KeepsSnapshot(t *testing.T) {
	c := New()

	c.AddItem(cube("p1", 19.99))
	repriced := cube("p1", 24.99)
	c.AddItem(repriced)

	// The add-time price snapshot survives later adds of the same product
	assert.True(t, c.Items[0].Price.Equal(decimal.NewFromFloat(19.99)))
}

func TestCart_UpdateQuantity(t *testing.T) {
	c := New()
	c.AddItem(cube("p1", 19.99))

	c.UpdateQuantity("p1", 5)
	assert.Equal(t, 5, c.Items[0].Quantity)

	c.UpdateQuantity("p1", 0)
	assert.Empty(t, c.Items)
}

func TestCart_UpdateQuantity_NegativeRemoves(t *testing.T) {
	c := New()
	c.AddItem(cube("p1", 19.99))

	c.UpdateQuantity("p1", -3)
	assert.Empty(t, c.Items)
}

func TestCart_RemoveItem(t *testing.T) {
	c := New()
	c.AddItem(cube("p1", 19.99))
	c.AddItem(cube("p2", 35.00))

	c.RemoveItem("p1")

	require.Len(t, c.Items, 1)
	assert.Equal(t, "p2", c.Items[0].ProductID)

	// Removing an absent id is a no-op
	c.RemoveItem("p9")
	assert.Len(t, c.Items, 1)
}

func TestCart_Totals(t *testing.T) {
	c := New()
	c.AddItem(cube("p1", 19.99))
	c.AddItem(cube("p1", 19.99))
	c.AddItem(cube("p2", 35.00))
	c.UpdateQuantity("p2", 3)

	assert.Equal(t, 5, c.TotalItems())
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromFloat(144.98)),
		"got total %s", c.TotalPrice())
}

func TestCart_Totals_AfterRemovals(t *testing.T) {
	c := New()
	c.AddItem(cube("p1", 10))
	c.AddItem(cube("p2", 20))
	c.UpdateQuantity("p1", 4)
	c.RemoveItem("p2")
	c.UpdateQuantity("p1", 2)

	assert.Equal(t, 2, c.TotalItems())
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(20)))
}

func TestCart_Clear(t *testing.T) {
	c := New()
	c.AddItem(cube("p1", 19.99))
	c.Clear()

	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.TotalItems())
	assert.True(t, c.TotalPrice().IsZero())
}

func TestCart_Toggle(t *testing.T) {
	c := New()

	assert.False(t, c.IsOpen)
	c.Toggle()
	assert.True(t, c.IsOpen)
	c.Toggle()
	assert.False(t, c.IsOpen)
}
