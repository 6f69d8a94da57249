package store

import (
	"context"
	"time"

	"github.com/granjalabs/granjapos/internal/domain"
	"gorm.io/gorm"
)

// ProductRepository is the single indexed lookup path for products. The
// inventory ledger is the only caller allowed to use the stock/cost
// mutators.
type ProductRepository interface {
	// List retrieves all products
	List(ctx context.Context) ([]domain.Product, error)

	// GetByID retrieves a product by id
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// Save inserts or replaces a product by id
	Save(ctx context.Context, p *domain.Product) error

	// Delete removes a product by id; historical orders are not cascaded
	Delete(ctx context.Context, id string) error

	// AdjustStock adds delta (base unit, may be negative) to a product's
	// stock. Returns false when the product no longer exists.
	AdjustStock(ctx context.Context, id string, delta float64) (bool, error)

	// UpdateCost overwrites a product's cost. Returns false when the
	// product no longer exists.
	UpdateCost(ctx context.Context, id string, cost float64) (bool, error)

	// LowStock retrieves products at or below their minimum stock threshold
	LowStock(ctx context.Context) ([]domain.Product, error)

	// Count returns the number of products
	Count(ctx context.Context) (int64, error)

	// Transaction runs fn against a repository bound to one transaction;
	// all writes inside commit or roll back together
	Transaction(ctx context.Context, fn func(ProductRepository) error) error
}

// OrderRepository handles order persistence. Orders are created atomically
// with their items and never deleted.
type OrderRepository interface {
	// List retrieves all orders with items, newest first
	List(ctx context.Context) ([]domain.Order, error)

	// GetByID retrieves an order with its items
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// Create inserts an order together with its items
	Create(ctx context.Context, o *domain.Order) error

	// UpdateStatus persists a new status and, when courier is non-empty,
	// the assigned courier. Returns false when the order does not exist.
	UpdateStatus(ctx context.Context, id string, status string, courier string) (bool, error)

	// ListSince retrieves orders created at or after t, newest first
	ListSince(ctx context.Context, t time.Time) ([]domain.Order, error)
}

// PurchaseRepository is an append-only restock ledger.
type PurchaseRepository interface {
	// List retrieves all purchases, newest first
	List(ctx context.Context) ([]domain.Purchase, error)

	// Create appends a purchase record
	Create(ctx context.Context, p *domain.Purchase) error
}

// CustomerRepository handles customer records.
type CustomerRepository interface {
	// List retrieves all customers
	List(ctx context.Context) ([]domain.Customer, error)

	// GetByID retrieves a customer by id
	GetByID(ctx context.Context, id string) (*domain.Customer, error)

	// Save inserts or replaces a customer by id
	Save(ctx context.Context, c *domain.Customer) error

	// AddPurchaseTotal accumulates an order total onto the customer's
	// lifetime purchase figure. Returns false when the customer is gone.
	AddPurchaseTotal(ctx context.Context, id string, amount float64) (bool, error)
}

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *GormProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProductRepository) Save(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *GormProductRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{}).Error
}

func (r *GormProductRepository) AdjustStock(ctx context.Context, id string, delta float64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta))
	return res.RowsAffected > 0, res.Error
}

func (r *GormProductRepository) UpdateCost(ctx context.Context, id string, cost float64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Update("cost", cost)
	return res.RowsAffected > 0, res.Error
}

func (r *GormProductRepository) LowStock(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Where("stock <= min_stock").
		Order("stock ASC").
		Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&total).Error
	return total, err
}

func (r *GormProductRepository) Transaction(ctx context.Context, fn func(ProductRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormProductRepository{db: tx})
	})
}

// GormOrderRepository is the GORM implementation of OrderRepository
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("date DESC").
		Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *GormOrderRepository) Create(ctx context.Context, o *domain.Order) error {
	// items are saved in the same insert through the association
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id string, status string, courier string) (bool, error) {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if courier != "" {
		updates["assigned_to"] = courier
	}
	res := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *GormOrderRepository) ListSince(ctx context.Context, t time.Time) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("date >= ?", t).
		Order("date DESC").
		Find(&orders).Error
	return orders, err
}

// GormPurchaseRepository is the GORM implementation of PurchaseRepository
type GormPurchaseRepository struct {
	db *gorm.DB
}

func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

func (r *GormPurchaseRepository) List(ctx context.Context) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	err := r.db.WithContext(ctx).Order("date DESC").Find(&purchases).Error
	return purchases, err
}

func (r *GormPurchaseRepository) Create(ctx context.Context, p *domain.Purchase) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// GormCustomerRepository is the GORM implementation of CustomerRepository
type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := r.db.WithContext(ctx).Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *GormCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCustomerRepository) Save(ctx context.Context, c *domain.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *GormCustomerRepository) AddPurchaseTotal(ctx context.Context, id string, amount float64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("id = ?", id).
		Update("total_purchases", gorm.Expr("total_purchases + ?", amount))
	return res.RowsAffected > 0, res.Error
}
