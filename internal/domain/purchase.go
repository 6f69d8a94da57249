package domain

import "time"

// Purchase is an append-only restock ledger entry. Product name is a frozen
// snapshot; quantity is in the product's base unit.
type Purchase struct {
	ID          string    `gorm:"primaryKey;size:32" json:"id" form:"id"`
	Date        time.Time `gorm:"index" json:"date" form:"date"`
	ProductID   string    `gorm:"size:32;index" json:"product_id" form:"product_id"`
	ProductName string    `json:"product_name" form:"product_name"`
	Quantity    float64   `json:"quantity" form:"quantity"` // base unit
	UnitCost    float64   `json:"unit_cost" form:"unit_cost"`
	TotalCost   float64   `json:"total_cost" form:"total_cost"`
	Supplier    string    `json:"supplier" form:"supplier"`
	Notes       string    `json:"notes" form:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName Specify table name
func (Purchase) TableName() string {
	return "pos_purchase"
}
