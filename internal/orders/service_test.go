package orders

import (
	"context"
	"testing"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/granjalabs/granjapos/internal/domain"
	"github.com/granjalabs/granjapos/internal/ledger"
	"github.com/granjalabs/granjapos/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProductRepo struct {
	products map[string]*domain.Product
}

func newMemProductRepo(products ...domain.Product) *memProductRepo {
	r := &memProductRepo{products: map[string]*domain.Product{}}
	for i := range products {
		p := products[i]
		r.products[p.ID] = &p
	}
	return r
}

func (r *memProductRepo) List(ctx context.Context) ([]domain.Product, error) { return nil, nil }
func (r *memProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, assert.AnError
	}
	cp := *p
	return &cp, nil
}
func (r *memProductRepo) Save(ctx context.Context, p *domain.Product) error { return nil }
func (r *memProductRepo) Delete(ctx context.Context, id string) error       { return nil }
func (r *memProductRepo) AdjustStock(ctx context.Context, id string, delta float64) (bool, error) {
	p, ok := r.products[id]
	if !ok {
		return false, nil
	}
	p.Stock += delta
	return true, nil
}
func (r *memProductRepo) UpdateCost(ctx context.Context, id string, cost float64) (bool, error) {
	p, ok := r.products[id]
	if !ok {
		return false, nil
	}
	p.Cost = cost
	return true, nil
}
func (r *memProductRepo) LowStock(ctx context.Context) ([]domain.Product, error) { return nil, nil }
func (r *memProductRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.products)), nil
}
func (r *memProductRepo) Transaction(ctx context.Context, fn func(store.ProductRepository) error) error {
	return fn(r)
}

type memPurchaseRepo struct{ rows []domain.Purchase }

func (r *memPurchaseRepo) List(ctx context.Context) ([]domain.Purchase, error) { return r.rows, nil }
func (r *memPurchaseRepo) Create(ctx context.Context, p *domain.Purchase) error {
	r.rows = append(r.rows, *p)
	return nil
}

type memOrderRepo struct {
	orders map[string]*domain.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[string]*domain.Order{}}
}

func (r *memOrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}
func (r *memOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, assert.AnError
	}
	cp := *o
	return &cp, nil
}
func (r *memOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}
func (r *memOrderRepo) UpdateStatus(ctx context.Context, id string, status string, courier string) (bool, error) {
	o, ok := r.orders[id]
	if !ok {
		return false, nil
	}
	o.Status = status
	if courier != "" {
		o.AssignedTo = courier
	}
	return true, nil
}
func (r *memOrderRepo) ListSince(ctx context.Context, t time.Time) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if !o.Date.Before(t) {
			out = append(out, *o)
		}
	}
	return out, nil
}

type memCustomerRepo struct {
	customers map[string]*domain.Customer
}

func newMemCustomerRepo(customers ...domain.Customer) *memCustomerRepo {
	r := &memCustomerRepo{customers: map[string]*domain.Customer{}}
	for i := range customers {
		c := customers[i]
		r.customers[c.ID] = &c
	}
	return r
}

func (r *memCustomerRepo) List(ctx context.Context) ([]domain.Customer, error) { return nil, nil }
func (r *memCustomerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, assert.AnError
	}
	cp := *c
	return &cp, nil
}
func (r *memCustomerRepo) Save(ctx context.Context, c *domain.Customer) error { return nil }
func (r *memCustomerRepo) AddPurchaseTotal(ctx context.Context, id string, amount float64) (bool, error) {
	c, ok := r.customers[id]
	if !ok {
		return false, nil
	}
	c.TotalPurchases += amount
	return true, nil
}

type fixture struct {
	service   *Service
	products  *memProductRepo
	orders    *memOrderRepo
	customers *memCustomerRepo
	bus       evbus.Bus
}

func newFixture(products ...domain.Product) *fixture {
	f := &fixture{
		products:  newMemProductRepo(products...),
		orders:    newMemOrderRepo(),
		customers: newMemCustomerRepo(domain.Customer{ID: "c-juan", Name: "Juan Perez"}),
		bus:       evbus.New(),
	}
	lg := ledger.NewLedger(f.products, &memPurchaseRepo{})
	f.service = NewService(f.orders, f.customers, lg, f.bus)
	return f
}

func chicken() domain.Product {
	return domain.Product{
		ID:       "p-chicken",
		Name:     "Pechuga de Pollo",
		Category: domain.CategoryChicken,
		Unit:     domain.UnitKg,
		Price:    8.50,
		Cost:     6.00,
		Stock:    45.5,
	}
}

func TestCreateOrderRejectsEmpty(t *testing.T) {
	f := newFixture(chicken())
	_, err := f.service.CreateOrder(context.Background(), &domain.Order{})
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestCreateOrderRejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture(chicken())
	_, err := f.service.CreateOrder(context.Background(), &domain.Order{
		Items: []domain.OrderItem{{ProductID: "p-chicken", Quantity: 0}},
	})
	assert.ErrorIs(t, err, ErrNonPositiveQuantity)
}

func TestCreateCounterOrderDefaults(t *testing.T) {
	f := newFixture(chicken())
	order := &domain.Order{
		PaymentMethod: domain.PaymentCash,
		Items: []domain.OrderItem{
			{ProductID: "p-chicken", ProductName: "Pechuga de Pollo (2 Kg)", Quantity: 2, PriceAtSale: 8.50},
		},
	}
	gaps, err := f.service.CreateOrder(context.Background(), order)
	require.NoError(t, err)
	assert.Empty(t, gaps)

	// counter sales are born in the terminal state with derived figures
	assert.NotEmpty(t, order.ID)
	assert.False(t, order.Date.IsZero())
	assert.Equal(t, domain.OrderTypeCounter, order.Type)
	assert.Equal(t, domain.OrderStatusDelivered, order.Status)
	assert.Equal(t, "Cliente Mostrador", order.CustomerName)
	assert.InDelta(t, 17.00, order.Total, 1e-9)

	// creation is the single stock-deducting event
	assert.InDelta(t, 43.5, f.products.products["p-chicken"].Stock, 1e-9)
}

func TestCreateDeliveryOrderStartsPending(t *testing.T) {
	f := newFixture(chicken())
	order := &domain.Order{
		Type:         domain.OrderTypeDelivery,
		CustomerID:   "c-juan",
		CustomerName: "Juan Perez",
		Items: []domain.OrderItem{
			{ProductID: "p-chicken", Quantity: 1, PriceAtSale: 8.50, Subtotal: 8.50},
		},
	}
	_, err := f.service.CreateOrder(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)

	// the buyer's lifetime figure accumulates on creation, not on delivery
	assert.InDelta(t, 8.50, f.customers.customers["c-juan"].TotalPurchases, 1e-9)
}

func TestCreateOrderRecomputesTotal(t *testing.T) {
	f := newFixture(chicken())
	order := &domain.Order{
		Total: 999.99, // client-supplied totals are never trusted
		Items: []domain.OrderItem{
			{ProductID: "p-chicken", Quantity: 2, PriceAtSale: 8.50},
			{ProductID: "p-chicken", Quantity: 1, PriceAtSale: 8.50, Subtotal: 8.50},
		},
	}
	_, err := f.service.CreateOrder(context.Background(), order)
	require.NoError(t, err)
	assert.InDelta(t, 25.50, order.Total, 1e-9)
}

func TestCreateOrderReportsGapsForMissingProducts(t *testing.T) {
	f := newFixture(chicken())
	order := &domain.Order{
		Items: []domain.OrderItem{
			{ProductID: "p-chicken", Quantity: 1, PriceAtSale: 8.50},
			{ProductID: "p-gone", ProductName: "Producto Eliminado", Quantity: 2, PriceAtSale: 3.00},
		},
	}
	gaps, err := f.service.CreateOrder(context.Background(), order)
	require.NoError(t, err)
	require.Len(t, gaps, 1)
	assert.Equal(t, "p-gone", gaps[0].ProductID)
	// the order itself is still persisted intact
	saved, err := f.orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Len(t, saved.Items, 2)
}

func TestCreateOrderPublishesEvent(t *testing.T) {
	f := newFixture(chicken())
	var published *domain.Order
	require.NoError(t, f.bus.Subscribe(TopicOrderCreated, func(o *domain.Order) {
		published = o
	}))

	order := &domain.Order{
		Type: domain.OrderTypeDelivery,
		Items: []domain.OrderItem{
			{ProductID: "p-chicken", Quantity: 1, PriceAtSale: 8.50},
		},
	}
	_, err := f.service.CreateOrder(context.Background(), order)
	require.NoError(t, err)

	require.NotNil(t, published)
	assert.Equal(t, order.ID, published.ID)
}

func TestSetStatusNeverTouchesStock(t *testing.T) {
	f := newFixture(chicken())
	order := &domain.Order{
		Type: domain.OrderTypeDelivery,
		Items: []domain.OrderItem{
			{ProductID: "p-chicken", Quantity: 2.5, PriceAtSale: 8.50},
		},
	}
	_, err := f.service.CreateOrder(context.Background(), order)
	require.NoError(t, err)
	stockAfterSale := f.products.products["p-chicken"].Stock

	for _, status := range []string{
		domain.OrderStatusInPreparation,
		domain.OrderStatusInTransit,
		domain.OrderStatusCancelled, // no restock on cancellation
	} {
		found, err := f.service.SetStatus(context.Background(), order.ID, status, "")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, stockAfterSale, f.products.products["p-chicken"].Stock)
	}

	saved, err := f.orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, saved.Status)
}

func TestSetStatusAssignsCourier(t *testing.T) {
	f := newFixture(chicken())
	order := &domain.Order{
		Type: domain.OrderTypeDelivery,
		Items: []domain.OrderItem{
			{ProductID: "p-chicken", Quantity: 1, PriceAtSale: 8.50},
		},
	}
	_, err := f.service.CreateOrder(context.Background(), order)
	require.NoError(t, err)

	found, err := f.service.SetStatus(context.Background(), order.ID, domain.OrderStatusInTransit, "Carlos")
	require.NoError(t, err)
	assert.True(t, found)

	saved, _ := f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, "Carlos", saved.AssignedTo)

	// a later transition without a courier keeps the assignment
	_, err = f.service.SetStatus(context.Background(), order.ID, domain.OrderStatusDelivered, "")
	require.NoError(t, err)
	saved, _ = f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, "Carlos", saved.AssignedTo)
}

func TestSetStatusUnknownOrderIsNoOp(t *testing.T) {
	f := newFixture(chicken())
	found, err := f.service.SetStatus(context.Background(), "o-missing", domain.OrderStatusDelivered, "")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	f := newFixture(chicken())
	_, err := f.service.SetStatus(context.Background(), "o-1", "Perdido", "")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}
