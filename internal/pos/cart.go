package pos

import (
	"errors"
	"fmt"

	"github.com/granjalabs/granjapos/internal/domain"
)

var ErrLineNotFound = errors.New("pos: cart line index out of range")

// Line is a cart line item: a snapshot of the product plus the converted
// quantity. Quantity is always in the product's base unit; SalesUnit is the
// derived display label; UnitPrice and UnitCost are the catalog values per
// base unit at the time of adding.
type Line struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"` // base unit
	SalesUnit   string  `json:"sales_unit"`
	UnitPrice   float64 `json:"unit_price"` // per base unit
	UnitCost    float64 `json:"unit_cost"`  // per base unit, frozen for margin history
}

// Subtotal is price per base unit times base quantity; the lb/kg conversion
// is already folded into Quantity, so no further scaling applies here.
func (l Line) Subtotal() float64 {
	return l.UnitPrice * l.Quantity
}

// Cart accumulates line items for one in-progress sale. It owns its lines
// exclusively until checkout. Lines are never merged: adding the same
// product twice produces two lines, because merging entries with different
// display labels ("1 Lb" + "0.5 Kg") cannot be represented by a single label
// without re-deriving it. Duplicate lines beat incorrect labels.
type Cart struct {
	lines []Line
}

func NewCart() *Cart {
	return &Cart{}
}

// AddItem converts the entered quantity/unit and appends a new line.
// It does not validate against current stock: overselling is permitted,
// stock goes negative and is flagged by the low-stock alert instead of
// being blocked at sale time.
func (c *Cart) AddItem(p *domain.Product, quantity float64, unit SalesUnit) (Line, error) {
	conv, err := Convert(p, quantity, unit)
	if err != nil {
		return Line{}, err
	}
	line := Line{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    conv.BaseQuantity,
		SalesUnit:   conv.DisplayLabel,
		UnitPrice:   p.Price,
		UnitCost:    p.Cost,
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// RemoveItem removes one line by position.
func (c *Cart) RemoveItem(index int) error {
	if index < 0 || index >= len(c.lines) {
		return fmt.Errorf("%w: %d", ErrLineNotFound, index)
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Total sums price × quantity across all lines.
func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// OrderItems materializes the cart into immutable order items. The frozen
// product name embeds the sales unit label so historical records remain
// readable after catalog edits.
func (c *Cart) OrderItems() []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(c.lines))
	for _, l := range c.lines {
		cost := l.UnitCost
		items = append(items, domain.OrderItem{
			ProductID:   l.ProductID,
			ProductName: fmt.Sprintf("%s (%s)", l.ProductName, l.SalesUnit),
			Quantity:    l.Quantity,
			PriceAtSale: l.UnitPrice,
			CostAtSale:  &cost,
			Subtotal:    l.Subtotal(),
		})
	}
	return items
}
