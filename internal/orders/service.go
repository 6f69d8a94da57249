// Package orders manages the order lifecycle: creation (the single event
// that deducts inventory) and delivery status transitions.
package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/granjalabs/granjapos/internal/domain"
	"github.com/granjalabs/granjapos/internal/ledger"
	"github.com/granjalabs/granjapos/internal/store"
	"github.com/granjalabs/granjapos/pkg/common"
	"go.uber.org/zap"
)

// TopicOrderCreated is published on the event bus after an order and its
// stock deductions are persisted. Subscribers (delivery views, alerting)
// get the *domain.Order; the periodic poll remains the catch-all refresh.
const TopicOrderCreated = "order.created"

var (
	ErrEmptyOrder          = errors.New("orders: order must contain at least one item")
	ErrNonPositiveQuantity = errors.New("orders: item quantity must be positive")
	ErrUnknownStatus       = errors.New("orders: unknown order status")
)

// Service ties order creation to the inventory ledger and persists status
// transitions. It never restocks on cancellation: cancelling an in-transit
// or delivered order reflects failed fulfillment after goods already left,
// not a return.
type Service struct {
	orders    store.OrderRepository
	customers store.CustomerRepository
	ledger    *ledger.Ledger
	bus       evbus.Bus
}

func NewService(orders store.OrderRepository, customers store.CustomerRepository, lg *ledger.Ledger, bus evbus.Bus) *Service {
	return &Service{orders: orders, customers: customers, ledger: lg, bus: bus}
}

// CreateOrder validates, persists and applies an order atomically with its
// items. Counter sales are born in the Entregado terminal state; delivery
// orders start Pendiente and are advanced by explicit SetStatus calls.
// Returned gaps name items whose product vanished between cart and commit.
func (s *Service) CreateOrder(ctx context.Context, o *domain.Order) ([]ledger.ReferenceGap, error) {
	if len(o.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for i := range o.Items {
		if o.Items[i].Quantity <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrNonPositiveQuantity, o.Items[i].ProductName)
		}
		if o.Items[i].Subtotal == 0 {
			o.Items[i].Subtotal = o.Items[i].PriceAtSale * o.Items[i].Quantity
		}
	}

	if o.ID == "" {
		o.ID = common.UUID()
	}
	if o.Date.IsZero() {
		o.Date = time.Now()
	}
	if o.Type == "" {
		o.Type = domain.OrderTypeCounter
	}
	if o.Status == "" {
		if o.Type == domain.OrderTypeDelivery {
			o.Status = domain.OrderStatusPending
		} else {
			o.Status = domain.OrderStatusDelivered
		}
	}
	if o.CustomerName == "" {
		o.CustomerName = "Cliente Mostrador"
	}

	// total is always recomputed from the items so the stored figure can
	// never drift from its lines
	var total float64
	for _, item := range o.Items {
		total += item.Subtotal
	}
	o.Total = total

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("orders: persist order: %w", err)
	}

	gaps, err := s.ledger.ApplySale(ctx, o.Items)
	if err != nil {
		return nil, err
	}

	if o.CustomerID != "" {
		if _, err := s.customers.AddPurchaseTotal(ctx, o.CustomerID, o.Total); err != nil {
			zap.L().Warn("failed to accumulate customer purchase total",
				zap.String("customer_id", o.CustomerID), zap.Error(err))
		}
	}

	if s.bus != nil {
		s.bus.Publish(TopicOrderCreated, o)
	}

	zap.L().Info("order created",
		zap.String("order_id", o.ID),
		zap.String("type", o.Type),
		zap.String("status", o.Status),
		zap.Float64("total", o.Total),
		zap.Int("items", len(o.Items)))

	return gaps, nil
}

// SetStatus persists a new status and, when provided, an assigned courier
// name. The engine does not police transition legality; the calling surface
// only offers legal moves. Unknown order ids are a no-op (found=false).
// Status transitions never touch stock.
func (s *Service) SetStatus(ctx context.Context, id string, status string, courier string) (bool, error) {
	if !domain.ValidOrderStatus(status) {
		return false, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	found, err := s.orders.UpdateStatus(ctx, id, status, courier)
	if err != nil {
		return false, fmt.Errorf("orders: update status: %w", err)
	}
	if found {
		zap.L().Info("order status updated",
			zap.String("order_id", id),
			zap.String("status", status),
			zap.String("assigned_to", courier))
	}
	return found, nil
}

// List returns all orders, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// ListSince returns orders created at or after t, newest first. Serves the
// delivery view's periodic refresh.
func (s *Service) ListSince(ctx context.Context, t time.Time) ([]domain.Order, error) {
	return s.orders.ListSince(ctx, t)
}

// Get returns one order with its items.
func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}
