// Package ledger is the only code path allowed to mutate product stock or
// cost. Sales decrement, purchases increment, and a purchase with a positive
// unit cost overwrites the product cost (last-write pricing).
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/granjalabs/granjapos/internal/domain"
	"github.com/granjalabs/granjapos/internal/store"
	"github.com/granjalabs/granjapos/pkg/common"
	"go.uber.org/zap"
)

var ErrNonPositiveQuantity = errors.New("ledger: purchase quantity must be positive")

// ReferenceGap records an operation that referenced a product which no
// longer exists. The operation is skipped silently (historical records must
// remain displayable after their referents are deleted), but the gap is
// surfaced so callers can log or alert on data drift.
type ReferenceGap struct {
	Op        string `json:"op"`
	ProductID string `json:"product_id"`
	Detail    string `json:"detail"`
}

func (g ReferenceGap) String() string {
	return fmt.Sprintf("%s: product %s missing (%s)", g.Op, g.ProductID, g.Detail)
}

// Ledger applies stock deltas triggered by completed sales and purchases.
type Ledger struct {
	products  store.ProductRepository
	purchases store.PurchaseRepository
}

func NewLedger(products store.ProductRepository, purchases store.PurchaseRepository) *Ledger {
	return &Ledger{products: products, purchases: purchases}
}

// ApplySale decrements each referenced product's stock by the item's
// base-unit quantity. All decrements run in one transaction. Stock may go
// negative or fractional; nothing is clamped. Items whose product was
// deleted after the order was placed are skipped and reported as gaps.
func (l *Ledger) ApplySale(ctx context.Context, items []domain.OrderItem) ([]ReferenceGap, error) {
	var gaps []ReferenceGap
	err := l.products.Transaction(ctx, func(tx store.ProductRepository) error {
		for _, item := range items {
			found, err := tx.AdjustStock(ctx, item.ProductID, -item.Quantity)
			if err != nil {
				return fmt.Errorf("ledger: decrement stock for %s: %w", item.ProductID, err)
			}
			if !found {
				gaps = append(gaps, ReferenceGap{
					Op:        "applySale",
					ProductID: item.ProductID,
					Detail:    item.ProductName,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, g := range gaps {
		zap.L().Warn("sale references missing product",
			zap.String("product_id", g.ProductID),
			zap.String("product_name", g.Detail))
	}
	return gaps, nil
}

// ApplyPurchase increments the product's stock by the purchased quantity
// and, when unitCost > 0, overwrites the product cost with it. A zero unit
// cost leaves the prior cost unchanged. A missing product is a no-op
// reported as a gap.
func (l *Ledger) ApplyPurchase(ctx context.Context, p *domain.Purchase) ([]ReferenceGap, error) {
	var gaps []ReferenceGap
	err := l.products.Transaction(ctx, func(tx store.ProductRepository) error {
		found, err := tx.AdjustStock(ctx, p.ProductID, p.Quantity)
		if err != nil {
			return fmt.Errorf("ledger: increment stock for %s: %w", p.ProductID, err)
		}
		if !found {
			gaps = append(gaps, ReferenceGap{
				Op:        "applyPurchase",
				ProductID: p.ProductID,
				Detail:    p.ProductName,
			})
			return nil
		}
		if p.UnitCost > 0 {
			if _, err := tx.UpdateCost(ctx, p.ProductID, p.UnitCost); err != nil {
				return fmt.Errorf("ledger: update cost for %s: %w", p.ProductID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, g := range gaps {
		zap.L().Warn("purchase references missing product",
			zap.String("product_id", g.ProductID),
			zap.String("product_name", g.Detail))
	}
	return gaps, nil
}

// RegisterPurchase validates and persists a restock entry, then applies its
// stock and cost effects. Total cost is derived when absent.
func (l *Ledger) RegisterPurchase(ctx context.Context, p *domain.Purchase) ([]ReferenceGap, error) {
	if p.Quantity <= 0 {
		return nil, ErrNonPositiveQuantity
	}
	if p.ID == "" {
		p.ID = common.UUID()
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	if p.TotalCost == 0 {
		p.TotalCost = p.Quantity * p.UnitCost
	}
	if err := l.purchases.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("ledger: persist purchase: %w", err)
	}
	return l.ApplyPurchase(ctx, p)
}

// AdjustStock applies a direct manual stock correction outside the
// sale/purchase flows.
func (l *Ledger) AdjustStock(ctx context.Context, productID string, delta float64) ([]ReferenceGap, error) {
	found, err := l.products.AdjustStock(ctx, productID, delta)
	if err != nil {
		return nil, fmt.Errorf("ledger: adjust stock for %s: %w", productID, err)
	}
	if !found {
		return []ReferenceGap{{Op: "adjustStock", ProductID: productID}}, nil
	}
	return nil, nil
}
