package domain

import "time"

// Customer is referenced by orders but not owned by them; orders keep frozen
// copies of name/phone/address so history survives edits or deletion.
type Customer struct {
	ID             string    `gorm:"primaryKey;size:32" json:"id" form:"id"`
	Name           string    `gorm:"index" json:"name" form:"name"`
	Phone          string    `gorm:"index" json:"phone" form:"phone"`
	Address        string    `json:"address" form:"address"`
	Notes          string    `json:"notes" form:"notes"`
	IsFrequent     bool      `json:"is_frequent" form:"is_frequent"`
	TotalPurchases float64   `json:"total_purchases" form:"total_purchases"` // cumulative order totals
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Customer) TableName() string {
	return "pos_customer"
}
