package domain

import "time"

// Order status state machine. Delivery orders walk
// Pendiente -> En Preparación -> En Camino -> Entregado, with Cancelado
// reachable from any non-terminal state. Counter sales are created directly
// in Entregado.
const (
	OrderStatusPending       = "Pendiente"
	OrderStatusInPreparation = "En Preparación"
	OrderStatusInTransit     = "En Camino"
	OrderStatusDelivered     = "Entregado"
	OrderStatusCancelled     = "Cancelado"
)

// Order types.
const (
	OrderTypeCounter  = "Venta Local"
	OrderTypeDelivery = "Delivery / WhatsApp"
)

// Payment methods.
const (
	PaymentCash     = "Efectivo"
	PaymentTransfer = "Transferencia"
	PaymentWallet   = "Billetera Digital"
	PaymentCard     = "Tarjeta"
)

// OrderStatuses lists all valid order statuses.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusInPreparation,
	OrderStatusInTransit,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	for _, st := range OrderStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Order is an immutable sales record except for its status and assigned
// courier. Customer name/phone/address are frozen copies so history survives
// customer edits or deletion. Orders are never deleted, only cancelled.
type Order struct {
	ID            string      `gorm:"primaryKey;size:32" json:"id" form:"id"`
	Date          time.Time   `gorm:"index" json:"date" form:"date"`
	CustomerID    string      `gorm:"size:32;index" json:"customer_id" form:"customer_id"`
	CustomerName  string      `json:"customer_name" form:"customer_name"`
	Phone         string      `json:"phone" form:"phone"`
	Address       string      `json:"address" form:"address"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;references:ID" json:"items"`
	Total         float64     `json:"total" form:"total"`
	Status        string      `gorm:"size:32;index" json:"status" form:"status"`
	Type          string      `gorm:"size:32;index" json:"type" form:"type"`
	PaymentMethod string      `gorm:"size:32" json:"payment_method" form:"payment_method"`
	AssignedTo    string      `json:"assigned_to" form:"assigned_to"` // courier name
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "pos_order"
}

// OrderItem is a frozen line snapshot: product name embeds the sales unit
// label, quantity is in the product's base unit, and price/cost are the
// catalog values at the moment of sale. Never updated after creation.
type OrderItem struct {
	ID          int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     string   `gorm:"size:32;index" json:"order_id"`
	ProductID   string   `gorm:"size:32;index" json:"product_id"`
	ProductName string   `json:"product_name"`
	Quantity    float64  `json:"quantity"` // base unit
	PriceAtSale float64  `json:"price_at_sale"`
	CostAtSale  *float64 `json:"cost_at_sale,omitempty"` // nil on legacy records
	Subtotal    float64  `json:"subtotal"`
}

// TableName Specify table name
func (OrderItem) TableName() string {
	return "pos_order_item"
}

// Delivered reports whether the order reached its successful terminal state.
func (o *Order) Delivered() bool {
	return o.Status == OrderStatusDelivered
}

// Cancelled reports whether the order was cancelled. Cancelled orders are
// excluded from every financial figure.
func (o *Order) Cancelled() bool {
	return o.Status == OrderStatusCancelled
}
