package pos

import (
	"testing"

	"github.com/granjalabs/granjapos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartNeverMergesLines(t *testing.T) {
	cart := NewCart()
	p := kgProduct(8.50)

	_, err := cart.AddItem(p, 1, SalesUnitPound)
	require.NoError(t, err)
	_, err = cart.AddItem(p, 0.5, SalesUnitBase)
	require.NoError(t, err)
	_, err = cart.AddItem(p, 1, SalesUnitPound)
	require.NoError(t, err)

	require.Equal(t, 3, cart.Len())
	lines := cart.Lines()
	assert.Equal(t, "1 Lb", lines[0].SalesUnit)
	assert.Equal(t, "0.5 Kg", lines[1].SalesUnit)
	assert.Equal(t, "1 Lb", lines[2].SalesUnit)
}

func TestCartTotal(t *testing.T) {
	cart := NewCart()
	p := kgProduct(10.00)

	_, err := cart.AddItem(p, 2, SalesUnitBase) // 20.00
	require.NoError(t, err)
	_, err = cart.AddItem(p, 1, SalesUnitPound) // 10 * 0.453592
	require.NoError(t, err)

	assert.InDelta(t, 20.00+10.00*0.453592, cart.Total(), 1e-9)
}

func TestCartRemoveItem(t *testing.T) {
	cart := NewCart()
	p := kgProduct(8.50)
	_, _ = cart.AddItem(p, 1, SalesUnitBase)
	_, _ = cart.AddItem(p, 2, SalesUnitBase)

	require.NoError(t, cart.RemoveItem(0))
	require.Equal(t, 1, cart.Len())
	assert.Equal(t, 2.0, cart.Lines()[0].Quantity)

	err := cart.RemoveItem(5)
	assert.ErrorIs(t, err, ErrLineNotFound)
	err = cart.RemoveItem(-1)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestCartClear(t *testing.T) {
	cart := NewCart()
	_, _ = cart.AddItem(kgProduct(8.50), 1, SalesUnitBase)
	cart.Clear()
	assert.Equal(t, 0, cart.Len())
	assert.Equal(t, 0.0, cart.Total())
}

func TestCartAddRejectsBadQuantity(t *testing.T) {
	cart := NewCart()
	_, err := cart.AddItem(kgProduct(8.50), -1, SalesUnitBase)
	assert.ErrorIs(t, err, ErrNonPositiveQuantity)
	assert.Equal(t, 0, cart.Len())
}

func TestCartOrderItemsFreezeSnapshot(t *testing.T) {
	cart := NewCart()
	p := &domain.Product{
		ID:       "p-eggs",
		Name:     "Huevo Rosado",
		Category: domain.CategoryEggs,
		Unit:     domain.UnitUnit,
		Price:    0.18,
		Cost:     0.12,
	}
	_, err := cart.AddItem(p, 30, SalesUnitBase)
	require.NoError(t, err)

	items := cart.OrderItems()
	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, "Huevo Rosado (Cubeta)", item.ProductName)
	assert.Equal(t, 30.0, item.Quantity)
	assert.Equal(t, 0.18, item.PriceAtSale)
	require.NotNil(t, item.CostAtSale)
	assert.Equal(t, 0.12, *item.CostAtSale)
	assert.InDelta(t, 5.40, item.Subtotal, 1e-9)

	// the frozen cost does not chase later catalog edits
	p.Cost = 0.20
	assert.Equal(t, 0.12, *item.CostAtSale)
}

func TestCartLinesReturnsCopy(t *testing.T) {
	cart := NewCart()
	_, _ = cart.AddItem(kgProduct(8.50), 1, SalesUnitBase)
	lines := cart.Lines()
	lines[0].Quantity = 99
	assert.Equal(t, 1.0, cart.Lines()[0].Quantity)
}
